package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/Malkan-Shaheen/pure-chef/internal/infrastructure/config"
	"github.com/Malkan-Shaheen/pure-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrQueueFull 隊列已滿，請稍後重試
var ErrQueueFull = errors.New("illustration queue is full")

// ErrQueueClosed 隊列已關閉
var ErrQueueClosed = errors.New("illustration queue is closed")

// Illustrator 配圖服務介面
type Illustrator interface {
	Illustrate(ctx context.Context, recipeTitle string) (string, error)
}

// IllustrationResult 單一標題的配圖結果
type IllustrationResult struct {
	Title    string `json:"title"`
	ImageURI string `json:"imageUri,omitempty"`
	Error    string `json:"error,omitempty"`

	err error
}

// Err 回傳底層錯誤，批次中單項失敗不影響其他項
func (r IllustrationResult) Err() error {
	return r.err
}

// illustrationJob 隊列中的一件配圖工作
type illustrationJob struct {
	ctx    context.Context
	title  string
	result chan IllustrationResult
}

// Manager 配圖工作隊列，固定數量的 worker 消化批次配圖請求
// 避免一次批次對生成服務開出無上限的並發連線
type Manager struct {
	illustrator Illustrator
	jobs        chan illustrationJob
	wg          sync.WaitGroup

	mu     sync.Mutex
	closed bool

	stats queueStats
}

type queueStats struct {
	submitted int64
	completed int64
	failed    int64
	rejected  int64
}

// NewManager 創建配圖隊列並啟動 worker
func NewManager(cfg *config.Config, illustrator Illustrator) *Manager {
	m := &Manager{
		illustrator: illustrator,
		jobs:        make(chan illustrationJob, cfg.Queue.MaxSize),
	}

	for i := 0; i < cfg.Queue.Workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}

	common.LogInfo("配圖隊列已啟動",
		zap.Int("worker 數量", cfg.Queue.Workers),
		zap.Int("隊列容量", cfg.Queue.MaxSize),
	)
	return m
}

// worker 依序消化隊列中的配圖工作
func (m *Manager) worker(id int) {
	defer m.wg.Done()

	for job := range m.jobs {
		// 呼叫端已放棄時跳過生成
		if err := job.ctx.Err(); err != nil {
			m.finish(job, IllustrationResult{Title: job.title, Error: err.Error(), err: err})
			continue
		}

		uri, err := m.illustrator.Illustrate(job.ctx, job.title)
		if err != nil {
			common.LogWarn("配圖工作失敗",
				zap.Int("worker", id),
				zap.String("標題", job.title),
				zap.Error(err),
			)
			m.finish(job, IllustrationResult{Title: job.title, Error: err.Error(), err: err})
			continue
		}
		m.finish(job, IllustrationResult{Title: job.title, ImageURI: uri})
	}
}

// finish 回報工作結果並更新統計
func (m *Manager) finish(job illustrationJob, result IllustrationResult) {
	m.mu.Lock()
	if result.err != nil {
		m.stats.failed++
	} else {
		m.stats.completed++
	}
	m.mu.Unlock()
	job.result <- result
}

// Submit 提交一件配圖工作，隊列滿時立即回錯不阻塞
func (m *Manager) Submit(ctx context.Context, title string) (<-chan IllustrationResult, error) {
	job := illustrationJob{
		ctx:    ctx,
		title:  title,
		result: make(chan IllustrationResult, 1),
	}

	// 入隊與關閉檢查共用同一把鎖，避免對已關閉的 channel 送值
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrQueueClosed
	}

	select {
	case m.jobs <- job:
		m.stats.submitted++
		return job.result, nil
	default:
		m.stats.rejected++
		return nil, ErrQueueFull
	}
}

// IllustrateBatch 批次配圖，結果順序與輸入標題順序一致
// 單項失敗記錄在該項的 Error 欄位，不中斷其他項
func (m *Manager) IllustrateBatch(ctx context.Context, titles []string) []IllustrationResult {
	channels := make([]<-chan IllustrationResult, len(titles))
	results := make([]IllustrationResult, len(titles))

	for i, title := range titles {
		ch, err := m.Submit(ctx, title)
		if err != nil {
			results[i] = IllustrationResult{Title: title, Error: err.Error(), err: err}
			continue
		}
		channels[i] = ch
	}

	for i, ch := range channels {
		if ch == nil {
			continue
		}
		select {
		case results[i] = <-ch:
		case <-ctx.Done():
			results[i] = IllustrationResult{Title: titles[i], Error: ctx.Err().Error(), err: ctx.Err()}
		}
	}

	return results
}

// Ping 檢查隊列是否仍在服務，回傳目前積壓數
func (m *Manager) Ping() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrQueueClosed
	}
	return len(m.jobs), nil
}

// GetStats 獲取隊列統計信息
func (m *Manager) GetStats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	return map[string]interface{}{
		"pending":   len(m.jobs),
		"submitted": m.stats.submitted,
		"completed": m.stats.completed,
		"failed":    m.stats.failed,
		"rejected":  m.stats.rejected,
	}
}

// Close 關閉隊列並等待 worker 結束
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	close(m.jobs)
	m.wg.Wait()
	common.LogInfo("配圖隊列已關閉")
}
