package knowledge

import (
	"context"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "kb.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&Entry{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seededRepo(t *testing.T) *Repo {
	t.Helper()
	repo := NewRepo(openTestDB(t))
	n, err := Seed(context.Background(), repo)
	require.NoError(t, err)
	require.Equal(t, len(starterEntries), n)
	return repo
}

func topics(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Topic+"/"+e.Subtopic)
	}
	return out
}

func TestSeed_OnlyOnce(t *testing.T) {
	repo := seededRepo(t)
	n, err := Seed(context.Background(), repo)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSearchByKeywords(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	got, err := repo.SearchByKeywords(ctx, "gravity physics", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Physics/Newton's laws"}, topics(got))

	require.NoError(t, repo.Create(ctx, &Entry{Subject: "mathematics", Topic: "Algebra", Subtopic: "Retired", Content: "old algebra notes", Difficulty: Beginner, IsActive: false}))
	got, err = repo.SearchByKeywords(ctx, "ALGEBRA", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.SearchByKeywords(ctx, "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.SearchByKeywords(ctx, "algebra physics grammar", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetBySubjectAndTopic(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	got, err := repo.GetBySubject(ctx, "Mathematics", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Algebra/Linear equations",
		"Algebra/Quadratic equations",
		"Calculus/Derivatives",
		"Geometry/Pythagorean theorem",
	}, topics(got))

	got, err = repo.GetBySubject(ctx, "mathematics", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.GetByTopic(ctx, "mathematics", "algebra", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Algebra/Linear equations", "Algebra/Quadratic equations"}, topics(got))
}

func TestSearchContent(t *testing.T) {
	repo := seededRepo(t)

	got, err := repo.SearchContent(context.Background(), "rate of change", 15)
	require.NoError(t, err)
	assert.Equal(t, []string{"Calculus/Derivatives"}, topics(got))

	got, err = repo.SearchContent(context.Background(), "", 15)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListSubjectsAndTopics(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	subjects, err := repo.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"computer science", "english", "history", "mathematics", "science"}, subjects)

	ts, err := repo.TopicsBySubject(ctx, "science")
	require.NoError(t, err)
	assert.Equal(t, []string{"Biology", "Chemistry", "Physics"}, ts)
}
