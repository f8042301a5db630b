package generate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/geoquiz/internal/llm"
	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/questiongen"
	"github.com/abhisek/geoquiz/internal/quiz"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screens/play"
	"github.com/abhisek/geoquiz/internal/store"
)

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	tab   = tea.KeyPressMsg{Code: tea.KeyTab}
)

// fakeGenerator returns a fixed set and records its input.
type fakeGenerator struct {
	set   *questionbank.Set
	err   error
	input questiongen.Input
	ctx   context.Context
}

func (f *fakeGenerator) Generate(ctx context.Context, input questiongen.Input) (*questionbank.Set, error) {
	f.input = input
	f.ctx = ctx
	if f.err != nil {
		return nil, f.err
	}
	set := *f.set
	return &set, nil
}

func riverSet() *questionbank.Set {
	return &questionbank.Set{
		Name:        "rivers",
		Description: "World rivers",
		Source:      questionbank.SourceLLM,
		Questions: []quiz.Question{
			{Text: "The Amazon flows into the Atlantic.", Answer: true},
			{Text: "The Rhine flows into the Black Sea.", Answer: false},
		},
	}
}

func openRepo(t *testing.T) store.SetRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.SetRepo()
}

func fill(s *GenerateScreen, topic, count string) {
	s.topic.SetValue(topic)
	s.count.SetValue(count)
}

func TestGenerate_EnterMovesToCount(t *testing.T) {
	s := New(&fakeGenerator{set: riverSet()}, nil)
	s.topic.SetValue("rivers")

	s.Update(enter)
	assert.Equal(t, fieldCount, s.field)
	assert.Equal(t, phaseInput, s.phase)

	s.Update(tab)
	assert.Equal(t, fieldTopic, s.field)
}

func TestGenerate_RejectsEmptyTopic(t *testing.T) {
	s := New(&fakeGenerator{set: riverSet()}, nil)
	s.field = fieldCount

	_, _ = s.Update(enter)
	assert.Equal(t, phaseInput, s.phase)
	assert.Equal(t, fieldTopic, s.field)
	assert.Contains(t, s.View(80, 24), "Enter a topic first.")
}

func TestGenerate_RejectsBadCount(t *testing.T) {
	s := New(&fakeGenerator{set: riverSet()}, nil)
	fill(s, "rivers", "45")
	s.field = fieldCount

	s.Update(enter)
	assert.Equal(t, phaseInput, s.phase)
	assert.Contains(t, s.errMsg, "Count must be between 1 and 30")
}

func TestGenerate_SavesAndPlays(t *testing.T) {
	repo := openRepo(t)
	gen := &fakeGenerator{set: riverSet()}
	s := New(gen, repo)
	fill(s, "  world rivers ", "2")
	s.field = fieldCount

	_, cmd := s.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, phaseGenerating, s.phase)
	assert.Contains(t, s.View(80, 24), "Generating")

	s.Update(cmd())
	assert.Equal(t, phaseDone, s.phase)
	require.NotNil(t, s.set)
	assert.True(t, s.saved)
	assert.Empty(t, s.errMsg)

	assert.Equal(t, "world rivers", gen.input.Topic)
	assert.Equal(t, 2, gen.input.Count)
	assert.Len(t, gen.input.Avoid, len(questionbank.Default().Questions))

	stored, err := repo.Get(context.Background(), "rivers")
	require.NoError(t, err)
	assert.Len(t, stored.Questions, 2)

	_, cmd = s.Update(enter)
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	_, ok = msg.Screen.(*play.QuizScreen)
	assert.True(t, ok)
}

func TestGenerate_NameConflictGetsSuffix(t *testing.T) {
	repo := openRepo(t)
	require.NoError(t, repo.Save(context.Background(), riverSet()))

	s := New(&fakeGenerator{set: riverSet()}, repo)
	fill(s, "rivers", "2")
	s.field = fieldCount

	_, cmd := s.Update(enter)
	s.Update(cmd())
	require.NotNil(t, s.set)
	assert.Equal(t, "rivers-2", s.set.Name)
}

// unlistableRepo fails List but otherwise behaves like the wrapped repo.
type unlistableRepo struct {
	store.SetRepo
}

func (unlistableRepo) List(ctx context.Context) ([]store.SetInfo, error) {
	return nil, errors.New("disk gone")
}

func TestGenerate_ReportsUnreadableStore(t *testing.T) {
	gen := &fakeGenerator{set: riverSet()}
	s := New(gen, unlistableRepo{openRepo(t)})
	fill(s, "rivers", "2")
	s.field = fieldCount

	_, cmd := s.Update(enter)
	s.Update(cmd())
	require.NotNil(t, s.set)
	assert.True(t, s.saved)
	assert.NotEmpty(t, gen.input.Avoid, "built-in statements are still avoided")
	assert.Contains(t, s.errMsg, "statements may repeat")
	assert.Contains(t, s.errMsg, "disk gone")
}

func TestGenerate_WithoutStoreKeepsSetInMemory(t *testing.T) {
	s := New(&fakeGenerator{set: riverSet()}, nil)
	fill(s, "rivers", "2")
	s.field = fieldCount

	_, cmd := s.Update(enter)
	s.Update(cmd())
	require.NotNil(t, s.set)
	assert.False(t, s.saved)
	assert.NotContains(t, s.View(80, 30), "Saved to your question sets.")
}

func TestGenerate_ErrorReturnsToForm(t *testing.T) {
	s := New(&fakeGenerator{err: errors.New("boom")}, nil)
	fill(s, "rivers", "2")
	s.field = fieldCount

	_, cmd := s.Update(enter)
	s.Update(cmd())
	assert.Equal(t, phaseDone, s.phase)
	assert.Nil(t, s.set)
	assert.Contains(t, s.errMsg, "boom")

	s.Update(enter)
	assert.Equal(t, phaseInput, s.phase)
	assert.Equal(t, fieldTopic, s.field)
}

func TestGenerate_BackCancelsRun(t *testing.T) {
	gen := &fakeGenerator{set: riverSet()}
	s := New(gen, nil)
	fill(s, "rivers", "2")
	s.field = fieldCount

	_, cmd := s.Update(enter)
	require.NotNil(t, cmd)

	assert.Nil(t, s.Back())
	assert.Equal(t, phaseInput, s.phase)

	// The late result is dropped.
	msg := cmd()
	require.NotNil(t, gen.ctx)
	assert.ErrorIs(t, gen.ctx.Err(), context.Canceled)
	s.Update(msg)
	assert.Equal(t, phaseInput, s.phase)
	assert.Nil(t, s.set)

	_, ok := s.Back()().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestGenerate_WithLLMGenerator(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"title": "Deserts",
		"statements": []map[string]any{
			{"text": "The Sahara is in Africa.", "answer": true},
			{"text": "The Gobi is in South America.", "answer": false},
		},
	}))
	s := New(questiongen.New(mock, questiongen.DefaultConfig()), nil)
	fill(s, "deserts", "2")
	s.field = fieldCount

	_, cmd := s.Update(enter)
	s.Update(cmd())
	require.NotNil(t, s.set, s.errMsg)
	assert.Equal(t, "deserts", s.set.Name)
	assert.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Topic: deserts")
}
