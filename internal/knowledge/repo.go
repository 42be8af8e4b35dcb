package knowledge

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Entry{}).Count(&n).Error
	return n, err
}

func normLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

func (r *Repo) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("is_active = ?", true)
}

// SearchByKeywords matches any whitespace separated term against keywords,
// content or topic. Results are ordered by subject, then topic.
func (r *Repo) SearchByKeywords(ctx context.Context, terms string, limit int) ([]Entry, error) {
	fields := strings.Fields(strings.ToLower(terms))
	if len(fields) == 0 {
		return []Entry{}, nil
	}

	clauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)*3)
	for _, f := range fields {
		like := "%" + f + "%"
		clauses = append(clauses, "LOWER(keywords) LIKE ? OR LOWER(content) LIKE ? OR LOWER(topic) LIKE ?")
		args = append(args, like, like, like)
	}

	var out []Entry
	err := r.active(ctx).
		Where("("+strings.Join(clauses, " OR ")+")", args...).
		Order("subject ASC, topic ASC").
		Limit(normLimit(limit, 10)).
		Find(&out).Error
	return out, err
}

func (r *Repo) GetBySubject(ctx context.Context, subject string, limit int) ([]Entry, error) {
	var out []Entry
	err := r.active(ctx).
		Where("LOWER(subject) = ?", strings.ToLower(subject)).
		Order("topic ASC, subtopic ASC").
		Limit(normLimit(limit, 20)).
		Find(&out).Error
	return out, err
}

func (r *Repo) GetByTopic(ctx context.Context, subject, topic string, limit int) ([]Entry, error) {
	var out []Entry
	err := r.active(ctx).
		Where("LOWER(subject) = ? AND LOWER(topic) = ?", strings.ToLower(subject), strings.ToLower(topic)).
		Order("subtopic ASC").
		Limit(normLimit(limit, 10)).
		Find(&out).Error
	return out, err
}

// SearchContent matches term as a single phrase.
func (r *Repo) SearchContent(ctx context.Context, term string, limit int) ([]Entry, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []Entry{}, nil
	}
	like := "%" + term + "%"
	var out []Entry
	err := r.active(ctx).
		Where("(LOWER(content) LIKE ? OR LOWER(topic) LIKE ? OR LOWER(subtopic) LIKE ? OR LOWER(keywords) LIKE ?)", like, like, like, like).
		Order("subject ASC, topic ASC").
		Limit(normLimit(limit, 15)).
		Find(&out).Error
	return out, err
}

func (r *Repo) ListSubjects(ctx context.Context) ([]string, error) {
	var out []string
	err := r.active(ctx).
		Model(&Entry{}).
		Distinct().
		Order("subject ASC").
		Pluck("subject", &out).Error
	return out, err
}

func (r *Repo) TopicsBySubject(ctx context.Context, subject string) ([]string, error) {
	var out []string
	err := r.active(ctx).
		Model(&Entry{}).
		Where("LOWER(subject) = ?", strings.ToLower(subject)).
		Distinct().
		Order("topic ASC").
		Pluck("topic", &out).Error
	return out, err
}
