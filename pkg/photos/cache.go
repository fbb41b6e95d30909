package photos

import (
	"context"
	"log"
	"sync"
)

// CacheState 缓存生命周期状态
type CacheState int

const (
	// CacheEmpty 尚未加载
	CacheEmpty CacheState = iota
	// CacheLoading 加载中（有一个进行中的加载）
	CacheLoading
	// CacheResolved 已完成（加载失败时为空列表）
	CacheResolved
)

func (s CacheState) String() string {
	switch s {
	case CacheEmpty:
		return "empty"
	case CacheLoading:
		return "loading"
	case CacheResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// pendingLoad 一次进行中的加载
type pendingLoad struct {
	done   chan struct{}
	photos []Photo
}

// Cache 照片缓存
//
// 由顶层控制器（App）持有并注入到拼贴场景中，多次进入场景只加载一次。
// 生命周期：empty → loading → resolved（失败时 resolved 为空列表）。
//
// 调用方的 context 只控制自己的等待；共享加载本身只会被 Reset/Close 取消，
// 一次快速离开场景不会让后续进入拿到空结果。
type Cache struct {
	provider Provider

	mu      sync.Mutex
	state   CacheState
	pending *pendingLoad
	photos  []Photo

	ctx    context.Context
	cancel context.CancelFunc
}

// NewCache 创建包装 provider 的缓存
func NewCache(provider Provider) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		provider: provider,
		state:    CacheEmpty,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// State 返回当前状态
func (c *Cache) State() CacheState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load 实现 Provider：返回缓存结果，必要时启动（或等待）共享加载
func (c *Cache) Load(ctx context.Context) ([]Photo, error) {
	c.mu.Lock()
	switch c.state {
	case CacheResolved:
		photos := c.photos
		c.mu.Unlock()
		return photos, nil
	case CacheEmpty:
		c.pending = &pendingLoad{done: make(chan struct{})}
		c.state = CacheLoading
		go c.run(c.ctx, c.pending)
	}
	pending := c.pending
	c.mu.Unlock()

	select {
	case <-pending.done:
		return pending.photos, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) run(ctx context.Context, pending *pendingLoad) {
	photos, err := c.provider.Load(ctx)
	if err != nil {
		log.Printf("[Photos] 照片加载中断: %v", err)
		photos = nil
	}

	c.mu.Lock()
	pending.photos = photos
	// Reset 之后的旧加载结果直接丢弃
	if c.pending == pending {
		c.photos = photos
		c.state = CacheResolved
		c.pending = nil
	}
	c.mu.Unlock()
	close(pending.done)
}

// Reset 丢弃缓存结果并取消进行中的加载，回到 empty 状态
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.state = CacheEmpty
	c.pending = nil
	c.photos = nil
}

// Close 取消进行中的加载（应用退出时调用）
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
}
