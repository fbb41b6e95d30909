package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Progress 本机保存的进度
// 浏览器中 gdata 使用 localStorage，桌面端使用用户数据目录
type Progress struct {
	ProposalAccepted bool         `yaml:"proposalAccepted"`
	Quiz             QuizSnapshot `yaml:"quiz"`
	BestScore        int          `yaml:"bestScore"`
	Attempts         int          `yaml:"attempts"` // 完成答题的次数
}

// DefaultProgress 返回初始进度
func DefaultProgress() *Progress {
	return &Progress{
		Quiz: QuizSnapshot{Step: QuizIdle},
	}
}

// ProgressManager 进度管理器
// 负责进度的加载、保存和内存管理
type ProgressManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	progress     *Progress
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "valentine"
)

// NewProgressManager 创建进度管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存进度）
//
// 加载失败不影响创建，使用初始进度。
func NewProgressManager(gdataManager *gdata.Manager) *ProgressManager {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		progress:     DefaultProgress(),
	}

	if err := pm.Load(); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (using defaults)", err)
	}
	return pm
}

// Degraded 是否处于降级模式（无法持久化）
func (pm *ProgressManager) Degraded() bool {
	return pm.gdataManager == nil
}

// Load 从 gdata 加载进度
//
// 如果 gdataManager 为 nil 或数据不存在，使用初始进度
func (pm *ProgressManager) Load() error {
	if pm.gdataManager == nil {
		pm.progress = DefaultProgress()
		return nil
	}

	if !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		pm.progress = DefaultProgress()
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		pm.progress = DefaultProgress()
		return fmt.Errorf("failed to load progress: %w", err)
	}

	loaded := DefaultProgress()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		pm.progress = DefaultProgress()
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}

	pm.progress = loaded
	log.Printf("[ProgressManager] Progress loaded (best score %d)", loaded.BestScore)
	return nil
}

// Save 保存进度到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// GetProgress 获取当前进度
func (pm *ProgressManager) GetProgress() *Progress {
	return pm.progress
}

// SetProposalAccepted 记录表白结果并保存
func (pm *ProgressManager) SetProposalAccepted(accepted bool) error {
	pm.progress.ProposalAccepted = accepted
	return pm.Save()
}

// SaveQuiz 保存问答进度
func (pm *ProgressManager) SaveQuiz(s QuizSnapshot) error {
	pm.progress.Quiz = s
	return pm.Save()
}

// RecordQuiz 记录一次完成的答题并更新最高分
func (pm *ProgressManager) RecordQuiz(score int) error {
	pm.progress.Attempts++
	if score > pm.progress.BestScore {
		pm.progress.BestScore = score
	}
	log.Printf("[ProgressManager] 第 %d 次答题，得分 %d，最高分 %d", pm.progress.Attempts, score, pm.progress.BestScore)
	return pm.Save()
}

// Reset 清空进度并保存
func (pm *ProgressManager) Reset() error {
	pm.progress = DefaultProgress()
	return pm.Save()
}
