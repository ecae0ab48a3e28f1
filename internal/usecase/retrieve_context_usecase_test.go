package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"legal-rag/internal/domain"
	"legal-rag/internal/usecase"
	"legal-rag/internal/usecase/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPassageIndex is a test double for domain.PassageIndex.
type MockPassageIndex struct {
	mock.Mock
}

func (m *MockPassageIndex) Search(ctx context.Context, queryVector []float32, limit int, topic string) ([]domain.SearchHit, error) {
	args := m.Called(ctx, queryVector, limit, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchHit), args.Error(1)
}

func (m *MockPassageIndex) BulkInsert(ctx context.Context, passages []domain.LegalPassage, embeddings [][]float32) error {
	args := m.Called(ctx, passages, embeddings)
	return args.Error(0)
}

func (m *MockPassageIndex) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPassageIndex) Topics(ctx context.Context) ([]domain.TopicCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopicCount), args.Error(1)
}

// MockVectorEncoder is a test double for domain.VectorEncoder.
type MockVectorEncoder struct {
	mock.Mock
}

func (m *MockVectorEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockVectorEncoder) Version() string {
	return "test-encoder"
}

// MockClassifier is a test double for domain.QueryClassifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(question string) domain.Classification {
	args := m.Called(question)
	return args.Get(0).(domain.Classification)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func passageHit(text, topic string, score float32) domain.SearchHit {
	return domain.SearchHit{
		Passage: domain.LegalPassage{ID: text, Text: text, Topic: topic},
		Score:   score,
	}
}

func newTestUsecase(t *testing.T, index *MockPassageIndex, encoder *MockVectorEncoder, classifier *MockClassifier) usecase.RetrieveContextUsecase {
	t.Helper()
	u, err := usecase.NewRetrieveContextUsecase(
		index,
		encoder,
		classifier,
		domain.NewDefaultTopicTable(),
		usecase.DefaultRetrievalConfig(),
		testLogger(),
	)
	require.NoError(t, err)
	return u
}

func TestRetrieveContext_HybridTopicFlow(t *testing.T) {
	index := new(MockPassageIndex)
	encoder := new(MockVectorEncoder)
	classifier := new(MockClassifier)

	question := "ما عدة الحامل؟"
	vec := []float32{0.1, 0.2, 0.3}

	classifier.On("Classify", question).Return(domain.Classification{
		Category: domain.TopicIddah, Intent: "استشارة", NeedsDeadlineCheck: true,
	})
	encoder.On("Encode", mock.Anything, []string{question}).Return([][]float32{vec}, nil).Once()

	semHits := []domain.SearchHit{passageHit("مادة عامة قريبة دلالياً", "الطلاق", 0.9)}
	filHits := []domain.SearchHit{passageHit("عدة الحامل أن تضع حملها", "العدة", 0.8)}
	index.On("Search", mock.Anything, vec, 10, "").Return(semHits, nil).Once()
	index.On("Search", mock.Anything, vec, 5, "العدة").Return(filHits, nil).Once()

	u := newTestUsecase(t, index, encoder, classifier)
	result, err := u.Execute(context.Background(), usecase.RetrieveInput{Question: question})

	require.NoError(t, err)
	assert.Equal(t, 2, result.NumResults)
	// The topic-filtered hit outranks the higher-scored semantic hit.
	assert.Equal(t, "العدة", result.Sources[0].Topic)
	assert.Contains(t, result.Context, "عدة الحامل أن تضع حملها")
	assert.True(t, result.Classification.NeedsDeadlineCheck)
	index.AssertExpectations(t)
	encoder.AssertExpectations(t)
}

func TestRetrieveContext_SecondCallServedFromCache(t *testing.T) {
	index := new(MockPassageIndex)
	encoder := new(MockVectorEncoder)
	classifier := new(MockClassifier)

	question := "ما شروط الحضانة؟"
	vec := []float32{0.5}

	classifier.On("Classify", question).Return(domain.Classification{Category: domain.TopicCustody, Intent: "استشارة"}).Once()
	encoder.On("Encode", mock.Anything, []string{question}).Return([][]float32{vec}, nil).Once()
	index.On("Search", mock.Anything, vec, 10, "").Return([]domain.SearchHit{passageHit("نص", "الحضانة", 0.9)}, nil).Once()
	index.On("Search", mock.Anything, vec, 5, "الحضانة").Return([]domain.SearchHit{}, nil).Once()

	u := newTestUsecase(t, index, encoder, classifier)

	first, err := u.Execute(context.Background(), usecase.RetrieveInput{Question: question})
	require.NoError(t, err)

	second, err := u.Execute(context.Background(), usecase.RetrieveInput{Question: question})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Every collaborator was hit exactly once; the .Once() expectations above
	// fail the test if the second call reaches the index or encoder.
	index.AssertExpectations(t)
	encoder.AssertExpectations(t)
	classifier.AssertExpectations(t)
}

func TestRetrieveContext_CacheKeyTrimsWhitespace(t *testing.T) {
	index := new(MockPassageIndex)
	encoder := new(MockVectorEncoder)
	classifier := new(MockClassifier)

	question := "ما شروط الحضانة؟"
	vec := []float32{0.5}

	classifier.On("Classify", question).Return(domain.Classification{Category: domain.TopicCustody, Intent: "استشارة"}).Once()
	encoder.On("Encode", mock.Anything, []string{question}).Return([][]float32{vec}, nil).Once()
	index.On("Search", mock.Anything, vec, 10, "").Return([]domain.SearchHit{passageHit("نص", "الحضانة", 0.9)}, nil).Once()
	index.On("Search", mock.Anything, vec, 5, "الحضانة").Return([]domain.SearchHit{}, nil).Once()

	u := newTestUsecase(t, index, encoder, classifier)

	_, err := u.Execute(context.Background(), usecase.RetrieveInput{Question: question})
	require.NoError(t, err)

	_, err = u.Execute(context.Background(), usecase.RetrieveInput{Question: "  " + question + "  "})
	require.NoError(t, err)

	index.AssertExpectations(t)
	encoder.AssertExpectations(t)
}

func TestRetrieveContext_EmptyQuestion(t *testing.T) {
	u := newTestUsecase(t, new(MockPassageIndex), new(MockVectorEncoder), new(MockClassifier))

	_, err := u.Execute(context.Background(), usecase.RetrieveInput{Question: "   "})

	require.Error(t, err)
}

func TestRetrieveContext_EnrichedFollowUpIsEmbedded(t *testing.T) {
	index := new(MockPassageIndex)
	encoder := new(MockVectorEncoder)
	classifier := new(MockClassifier)

	question := "وماذا عن الأطفال؟"
	enriched := question + " (الحضانة)"
	history := []domain.ChatTurn{
		{Role: domain.RoleUser, Content: "ما شروط الحضانة؟"},
	}
	vec := []float32{0.7}

	// Classification sees the raw question; embedding and topic detection see
	// the enriched one.
	classifier.On("Classify", question).Return(domain.Classification{Category: "عام", Intent: "استشارة"})
	encoder.On("Encode", mock.Anything, []string{enriched}).Return([][]float32{vec}, nil).Once()
	index.On("Search", mock.Anything, vec, 10, "").Return([]domain.SearchHit{}, nil).Once()
	index.On("Search", mock.Anything, vec, 5, "الحضانة").Return([]domain.SearchHit{}, nil).Once()

	u := newTestUsecase(t, index, encoder, classifier)
	result, err := u.Execute(context.Background(), usecase.RetrieveInput{
		Question:    question,
		ChatHistory: history,
	})

	require.NoError(t, err)
	assert.Equal(t, retrieval.NoResultsMarker, result.Context)
	assert.Zero(t, result.NumResults)
	encoder.AssertExpectations(t)
	index.AssertExpectations(t)
}

func TestRetrieveContext_NoTopicsSkipsFilteredSearch(t *testing.T) {
	index := new(MockPassageIndex)
	encoder := new(MockVectorEncoder)
	classifier := new(MockClassifier)

	question := "ما هي حقوقي بشكل عام؟"
	vec := []float32{0.3}

	classifier.On("Classify", question).Return(domain.Classification{Category: "عام", Intent: "استشارة"})
	encoder.On("Encode", mock.Anything, []string{question}).Return([][]float32{vec}, nil)
	index.On("Search", mock.Anything, vec, 10, "").Return([]domain.SearchHit{passageHit("نص عام", "", 0.6)}, nil)

	u := newTestUsecase(t, index, encoder, classifier)
	result, err := u.Execute(context.Background(), usecase.RetrieveInput{Question: question})

	require.NoError(t, err)
	assert.Equal(t, 1, result.NumResults)
	index.AssertNumberOfCalls(t, "Search", 1)
}

func TestRetrieveContext_EncoderFailure(t *testing.T) {
	index := new(MockPassageIndex)
	encoder := new(MockVectorEncoder)
	classifier := new(MockClassifier)

	question := "ما شروط الحضانة؟"
	encodeErr := errors.New("ollama unreachable")

	classifier.On("Classify", question).Return(domain.Classification{Category: domain.TopicCustody, Intent: "استشارة"})
	encoder.On("Encode", mock.Anything, []string{question}).Return(nil, encodeErr)

	u := newTestUsecase(t, index, encoder, classifier)
	_, err := u.Execute(context.Background(), usecase.RetrieveInput{Question: question})

	require.Error(t, err)
	assert.ErrorIs(t, err, encodeErr)
	index.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRetrieveContext_TopKOverride(t *testing.T) {
	index := new(MockPassageIndex)
	encoder := new(MockVectorEncoder)
	classifier := new(MockClassifier)

	question := "ما هي حقوقي بشكل عام؟"
	vec := []float32{0.3}

	classifier.On("Classify", question).Return(domain.Classification{Category: "عام", Intent: "استشارة"})
	encoder.On("Encode", mock.Anything, []string{question}).Return([][]float32{vec}, nil)
	// topK=3 with SemanticFactor=2 means a candidate pool of 6.
	index.On("Search", mock.Anything, vec, 6, "").Return([]domain.SearchHit{}, nil)

	u := newTestUsecase(t, index, encoder, classifier)
	_, err := u.Execute(context.Background(), usecase.RetrieveInput{Question: question, TopK: 3})

	require.NoError(t, err)
	index.AssertExpectations(t)
}

func TestNewRetrieveContextUsecase_InvalidConfig(t *testing.T) {
	_, err := usecase.NewRetrieveContextUsecase(
		new(MockPassageIndex),
		new(MockVectorEncoder),
		new(MockClassifier),
		domain.NewDefaultTopicTable(),
		usecase.RetrievalConfig{TopK: 0},
		testLogger(),
	)

	require.Error(t, err)
}
