package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mengeric/genmedia-server-go/genmedia"
)

// model 映射到数据库表。终态结果展开为标量列，便于按状态检索历史任务。
type model struct {
	ID               uint      `gorm:"primaryKey"`
	JobID            string    `gorm:"uniqueIndex;size:64"`
	Mode             string    `gorm:"index;size:16"`
	CreatedAt        time.Time `gorm:"index"`
	ExternalHandle   []byte    `gorm:"type:text"`
	TerminalSet      bool      `gorm:"index"`
	TerminalVideoURL string    `gorm:"type:text"`
	TerminalErr      string    `gorm:"type:text"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// Store 基于 GORM 的 Storage 实现，用于可选的任务历史留存。
type Store struct{ db *gorm.DB }

// New 创建 Store，调用方应自行在外部执行 AutoMigrate(Model()).
func New(db *gorm.DB) *Store { return &Store{db: db} }

// Model 返回表模型，供宿主执行 AutoMigrate。
func Model() any { return &model{} }

// Put 实现 Storage.Put。
func (s *Store) Put(ctx context.Context, rec *genmedia.JobRecord) error {
	m := toModel(rec)
	return s.db.WithContext(ctx).Where("job_id = ?", rec.ID).Assign(m).FirstOrCreate(&m).Error
}

// Get 实现 Storage.Get。
func (s *Store) Get(ctx context.Context, id string) (*genmedia.JobRecord, error) {
	var m model
	if err := s.db.WithContext(ctx).Where("job_id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genmedia.ErrJobNotFound
		}
		return nil, err
	}
	return fromModel(m), nil
}

// SetTerminal 实现 Storage.SetTerminal，先写者胜。
func (s *Store) SetTerminal(ctx context.Context, id string, res genmedia.Result) (genmedia.Result, error) {
	var out genmedia.Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model
		if err := tx.Where("job_id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return genmedia.ErrJobNotFound
			}
			return err
		}
		if m.TerminalSet {
			out = genmedia.Result{VideoURL: m.TerminalVideoURL, Err: m.TerminalErr}
			return nil
		}
		out = res
		return tx.Model(&model{}).Where("job_id = ?", id).Updates(map[string]any{
			"terminal_set":       true,
			"terminal_video_url": res.VideoURL,
			"terminal_err":       res.Err,
		}).Error
	})
	return out, err
}

// List 实现 Storage.List。
func (s *Store) List(ctx context.Context) ([]genmedia.JobRecord, error) {
	var list []model
	if err := s.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, err
	}
	out := make([]genmedia.JobRecord, 0, len(list))
	for _, m := range list {
		out = append(out, *fromModel(m))
	}
	return out, nil
}

// Delete 实现 Storage.Delete。
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("job_id = ?", id).Delete(&model{}).Error
}

func toModel(r *genmedia.JobRecord) model {
	m := model{
		JobID:          r.ID,
		Mode:           string(r.Mode),
		CreatedAt:      r.CreatedAt,
		ExternalHandle: []byte(r.ExternalHandle),
		UpdatedAt:      r.UpdatedAt,
	}
	if r.Terminal != nil {
		m.TerminalSet = true
		m.TerminalVideoURL = r.Terminal.VideoURL
		m.TerminalErr = r.Terminal.Err
	}
	return m
}

func fromModel(m model) *genmedia.JobRecord {
	rec := &genmedia.JobRecord{
		ID:             m.JobID,
		Mode:           genmedia.Mode(m.Mode),
		CreatedAt:      m.CreatedAt,
		ExternalHandle: m.ExternalHandle,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.TerminalSet {
		rec.Terminal = &genmedia.Result{VideoURL: m.TerminalVideoURL, Err: m.TerminalErr}
	}
	return rec
}
