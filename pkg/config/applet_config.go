package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/decker502/heartcollage/pkg/collage"
	"github.com/decker502/heartcollage/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 内嵌配置文件路径
const DefaultConfigPath = "data/applet.yaml"

// ErrInvalidConfig 配置内容不合法
var ErrInvalidConfig = errors.New("invalid applet config")

// AppletConfig 应用配置（data/applet.yaml）
type AppletConfig struct {
	Title    string         `yaml:"title"`
	Proposal ProposalConfig `yaml:"proposal"`
	Collage  CollageConfig  `yaml:"collage"`
	Photos   PhotosConfig   `yaml:"photos"`
	Quiz     QuizConfig     `yaml:"quiz"`
}

// ProposalConfig 表白页面文案
type ProposalConfig struct {
	Question string   `yaml:"question"`
	Yes      string   `yaml:"yes"`
	No       string   `yaml:"no"`
	Taunts   []string `yaml:"taunts"`  // 每次躲开时轮换显示
	Waiting  string   `yaml:"waiting"` // 拼贴画首帧之前的提示
	Accepted string   `yaml:"accepted"`
	Subtitle string   `yaml:"subtitle"`
	Caption  string   `yaml:"caption"`
}

// CollageConfig 拼贴动画参数，零值使用 collage 包默认值
type CollageConfig struct {
	DurationMs int     `yaml:"durationMs"`
	HeartScale float64 `yaml:"heartScale"`
	CardSize   float64 `yaml:"cardSize"`
	HoverScale float64 `yaml:"hoverScale"`
	MaxCards   int     `yaml:"maxCards"`
}

// Duration 动画时长
func (c CollageConfig) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

// Options 转换为动画器参数
func (c CollageConfig) Options(seed uint64) collage.Options {
	return collage.Options{
		Duration:   c.Duration(),
		HeartScale: c.HeartScale,
		CardSize:   c.CardSize,
		HoverScale: c.HoverScale,
		MaxCards:   c.MaxCards,
		Seed:       seed,
	}
}

// PhotosConfig 照片来源
type PhotosConfig struct {
	// Manifest 内嵌照片清单
	Manifest string `yaml:"manifest"`
	// RemoteManifest 浏览器构建中相对页面的清单地址，为空时使用内嵌清单
	RemoteManifest string `yaml:"remoteManifest"`
}

// QuizConfig 问答小游戏
type QuizConfig struct {
	Intro              string           `yaml:"intro"`
	SecondsPerQuestion int              `yaml:"secondsPerQuestion"`
	Questions          []QuestionConfig `yaml:"questions"`
	Prizes             []PrizeConfig    `yaml:"prizes"`
	Labels             QuizLabels       `yaml:"labels"`
}

// QuizLabels 问答界面文案，带 %d 的字段使用 fmt 格式化
type QuizLabels struct {
	Play        string `yaml:"play"`     // 拼贴页面进入问答的按钮
	Start       string `yaml:"start"`
	Back        string `yaml:"back"`
	Question    string `yaml:"question"` // 题号 %d / %d
	Score       string `yaml:"score"`    // 当前得分 %d
	Seconds     string `yaml:"seconds"`  // 剩余秒数 %d
	Points      string `yaml:"points"`
	Choose      string `yaml:"choose"`
	MainPrize   string `yaml:"mainPrize"`
	Selected    string `yaml:"selected"`
	Locked      string `yaml:"locked"`    // 未解锁 %d
	YourPrize   string `yaml:"yourPrize"` // 后接奖品名
	Confirm     string `yaml:"confirm"`
	Certificate string `yaml:"certificate"`
	Holder      string `yaml:"holder"` // 证书正文，%s 为奖品名
	Signature   string `yaml:"signature"`
}

// TimeLimit 每题限时
func (q QuizConfig) TimeLimit() time.Duration {
	return time.Duration(q.SecondsPerQuestion) * time.Second
}

// QuestionConfig 一道题
type QuestionConfig struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Correct int      `yaml:"correct"`
	Points  int      `yaml:"points"`
}

// PrizeConfig 奖品档位
type PrizeConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	MinScore int    `yaml:"minScore"`
	Main     bool   `yaml:"main"`
}

// Default 返回默认配置
func Default() *AppletConfig {
	return &AppletConfig{
		Title: "Valentine",
		Proposal: ProposalConfig{
			Question: "Will you be my valentine?",
			Yes:      "Yes",
			No:       "No",
			Taunts:   []string{"Are you sure?", "Try again!", "Nope, not that one"},
			Waiting:  "Just a moment...",
			Accepted: "Yay!",
			Subtitle: "You are the best valentine!",
			Caption:  "Our moments together",
		},
		Collage: CollageConfig{
			DurationMs: int(collage.DefaultDuration / time.Millisecond),
			HeartScale: collage.DefaultHeartScale,
			CardSize:   collage.DefaultCardSize,
			HoverScale: collage.DefaultHoverScale,
			MaxCards:   collage.HardCap,
		},
		Photos: PhotosConfig{
			Manifest: "assets/photos/manifest.yaml",
		},
		Quiz: QuizConfig{
			Intro:              "A present is waiting for you",
			SecondsPerQuestion: 20,
			Questions: []QuestionConfig{
				{Prompt: "Where did we first meet?", Options: []string{"At school", "At a cafe", "Online"}, Correct: 1, Points: 10},
			},
			Prizes: []PrizeConfig{
				{ID: "dinner", Name: "Romantic dinner", MinScore: 0, Main: true},
			},
			Labels: QuizLabels{
				Play:        "Play trivia",
				Start:       "Start",
				Back:        "Back",
				Question:    "Question %d / %d",
				Score:       "Score: %d",
				Seconds:     "%d s",
				Points:      "points",
				Choose:      "Choose a prize:",
				MainPrize:   "MAIN PRIZE",
				Selected:    "Selected",
				Locked:      "from %d points",
				YourPrize:   "Your prize:",
				Confirm:     "Confirm",
				Certificate: "PRIZE CERTIFICATE",
				Holder:      "The holder of this certificate is entitled to \"%s\".",
				Signature:   "With love",
			},
		},
	}
}

// Parse 解析 YAML，缺失字段使用默认值
func Parse(data []byte) (*AppletConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse applet config: %w", err)
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load 从磁盘读取配置
func Load(path string) (*AppletConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read applet config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadEmbedded 从内嵌资源读取配置
func LoadEmbedded(path string) (*AppletConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded applet config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults 显式写成空值的字段恢复默认值
func applyDefaults(cfg *AppletConfig) {
	def := Default()
	if len(cfg.Proposal.Taunts) == 0 {
		cfg.Proposal.Taunts = def.Proposal.Taunts
	}
	if cfg.Collage.MaxCards <= 0 || cfg.Collage.MaxCards > collage.HardCap {
		cfg.Collage.MaxCards = collage.HardCap
	}
	if cfg.Collage.DurationMs <= 0 {
		cfg.Collage.DurationMs = def.Collage.DurationMs
	}
	if cfg.Quiz.SecondsPerQuestion <= 0 {
		cfg.Quiz.SecondsPerQuestion = def.Quiz.SecondsPerQuestion
	}
	if cfg.Photos.Manifest == "" {
		cfg.Photos.Manifest = def.Photos.Manifest
	}
}

// Validate 校验配置
func (c *AppletConfig) Validate() error {
	if c.Collage.HeartScale < 0 || c.Collage.CardSize < 0 || c.Collage.HoverScale < 0 {
		return fmt.Errorf("%w: collage parameters must not be negative", ErrInvalidConfig)
	}
	if len(c.Quiz.Questions) == 0 {
		return fmt.Errorf("%w: at least one quiz question is required", ErrInvalidConfig)
	}
	for i, q := range c.Quiz.Questions {
		if q.Prompt == "" {
			return fmt.Errorf("%w: question %d has no prompt", ErrInvalidConfig, i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d needs at least 2 options", ErrInvalidConfig, i+1)
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return fmt.Errorf("%w: question %d correct option %d out of range", ErrInvalidConfig, i+1, q.Correct)
		}
		if q.Points < 0 {
			return fmt.Errorf("%w: question %d has negative points", ErrInvalidConfig, i+1)
		}
	}

	if len(c.Quiz.Prizes) == 0 {
		return fmt.Errorf("%w: at least one prize is required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Quiz.Prizes))
	for i, p := range c.Quiz.Prizes {
		if p.ID == "" {
			return fmt.Errorf("%w: prize %d has no id", ErrInvalidConfig, i+1)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate prize id %q", ErrInvalidConfig, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// MaxScore 全部答对的总分
func (q QuizConfig) MaxScore() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}
