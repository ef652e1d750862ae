package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/ragulator-backend/internal/logger"
	"github.com/yungbote/ragulator-backend/internal/repos"
	"github.com/yungbote/ragulator-backend/internal/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// One in-memory database per test; a second pooled connection would
	// see an empty schema.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&types.Session{},
		&types.Chain{},
		&types.Question{},
		&types.Configuration{},
		&types.Answer{},
		&types.AnswerComment{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeDirectory struct {
	files []string
	err   error
}

func (f *fakeDirectory) List() ([]string, error) {
	return f.files, f.err
}

type fakeChainClient struct {
	outputs         []string
	schema          map[string]interface{}
	invokeErr       error
	schemaErr       error
	gotChainFile    string
	gotInputs       []string
	gotConfigurable map[string]interface{}
}

func (f *fakeChainClient) BatchInvoke(ctx context.Context, chainFile string, inputs []string, configurable map[string]interface{}) ([]string, error) {
	f.gotChainFile = chainFile
	f.gotInputs = inputs
	f.gotConfigurable = configurable
	if f.invokeErr != nil {
		return nil, f.invokeErr
	}
	return f.outputs, nil
}

func (f *fakeChainClient) GetConfigSchema(ctx context.Context, chainFile string) (map[string]interface{}, error) {
	if f.schemaErr != nil {
		return nil, f.schemaErr
	}
	return f.schema, nil
}

type testEnv struct {
	db        *gorm.DB
	directory *fakeDirectory
	client    *fakeChainClient
	sessions  SessionService
	chains    ChainService
	configs   ConfigurationService
	questions QuestionService
	answers   AnswerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := openTestDB(t)
	log := testLogger()

	sessionRepo := repos.NewSessionRepo(db, log)
	chainRepo := repos.NewChainRepo(db, log)
	questionRepo := repos.NewQuestionRepo(db, log)
	configRepo := repos.NewConfigurationRepo(db, log)
	answerRepo := repos.NewAnswerRepo(db, log)
	commentRepo := repos.NewAnswerCommentRepo(db, log)

	directory := &fakeDirectory{files: []string{"simple_chain.py", "rag_chain.py"}}
	client := &fakeChainClient{schema: map[string]interface{}{"title": "RunnableConfig"}}

	return &testEnv{
		db:        db,
		directory: directory,
		client:    client,
		sessions:  NewSessionService(db, log, sessionRepo),
		chains:    NewChainService(db, log, chainRepo, sessionRepo, questionRepo, configRepo, answerRepo, directory, client),
		configs:   NewConfigurationService(db, log, configRepo, sessionRepo, chainRepo, client),
		questions: NewQuestionService(db, log, questionRepo, sessionRepo),
		answers:   NewAnswerService(db, log, answerRepo, commentRepo, questionRepo, chainRepo, configRepo),
	}
}

func (e *testEnv) mustSession(t *testing.T, name string) *types.Session {
	t.Helper()
	session, err := e.sessions.CreateSession(context.Background(), SessionCreate{Name: name})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func (e *testEnv) mustChain(t *testing.T, sessionID uuid.UUID, fileName string) *types.Chain {
	t.Helper()
	chains, err := e.chains.SelectChains(context.Background(), sessionID, []string{fileName})
	if err != nil {
		t.Fatalf("select chain %s: %v", fileName, err)
	}
	if len(chains) != 1 {
		t.Fatalf("select chain %s: got %d chains, want 1", fileName, len(chains))
	}
	return chains[0]
}

func (e *testEnv) mustQuestion(t *testing.T, sessionID uuid.UUID, text string) *types.Question {
	t.Helper()
	question, err := e.questions.CreateQuestion(context.Background(), sessionID, QuestionCreate{QuestionText: text})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	return question
}

func (e *testEnv) mustConfiguration(t *testing.T, sessionID, chainID uuid.UUID) *types.Configuration {
	t.Helper()
	config, err := e.configs.CreateConfiguration(context.Background(), sessionID, chainID, ConfigurationCreate{
		ConfigValues: map[string]interface{}{"temperature": 0.2},
	})
	if err != nil {
		t.Fatalf("create configuration: %v", err)
	}
	return config
}

func (e *testEnv) mustAnswer(t *testing.T, questionID, chainID, configID uuid.UUID, text string, score *int) *types.Answer {
	t.Helper()
	answer, err := e.answers.CreateAnswer(context.Background(), questionID, AnswerCreate{
		ChainID:         chainID,
		ConfigurationID: configID,
		GeneratedAnswer: text,
		Score:           score,
	})
	if err != nil {
		t.Fatalf("create answer: %v", err)
	}
	return answer
}

func intPtr(v int) *int { return &v }

func (e *testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestCreateAndGetSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.mustSession(t, "baseline-eval")
	got, err := env.sessions.GetSessionByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Name != "baseline-eval" {
		t.Errorf("name = %q, want %q", got.Name, "baseline-eval")
	}
	if got.ID != created.ID {
		t.Errorf("id = %s, want %s", got.ID, created.ID)
	}
}

func TestGetSessionByID_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sessions.GetSessionByID(context.Background(), uuid.New())
	var notFound *SessionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want SessionNotFoundError", err)
	}
}

func TestUpdateSession_PartialFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	desc := "original description"
	session, err := env.sessions.CreateSession(ctx, SessionCreate{Name: "before", Description: &desc})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	newName := "after"
	updated, err := env.sessions.UpdateSession(ctx, session.ID, SessionUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("update session: %v", err)
	}
	if updated.Name != "after" {
		t.Errorf("name = %q, want %q", updated.Name, "after")
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Errorf("description changed by name-only update: %v", updated.Description)
	}
}

func TestSelectChains_SkipsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	session := env.mustSession(t, "dedup")

	first, err := env.chains.SelectChains(ctx, session.ID, []string{"simple_chain.py", "rag_chain.py"})
	if err != nil {
		t.Fatalf("first select: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("first select: got %d chains, want 2", len(first))
	}

	second, err := env.chains.SelectChains(ctx, session.ID, []string{"simple_chain.py", "rag_chain.py"})
	if err != nil {
		t.Fatalf("second select: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second select: got %d chains, want 0", len(second))
	}
	if n := env.countRows(t, &types.Chain{}); n != 2 {
		t.Errorf("chain rows = %d, want 2", n)
	}
}

func TestSelectChains_CollapsesRepeatsInOneCall(t *testing.T) {
	env := newTestEnv(t)
	session := env.mustSession(t, "repeats")

	chains, err := env.chains.SelectChains(context.Background(), session.ID, []string{"simple_chain.py", "simple_chain.py"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(chains) != 1 {
		t.Errorf("got %d chains, want 1", len(chains))
	}
}

func TestSelectChains_RejectsUnknownFiles(t *testing.T) {
	env := newTestEnv(t)
	session := env.mustSession(t, "unknown-files")

	_, err := env.chains.SelectChains(context.Background(), session.ID, []string{"missing_chain.py"})
	var chainErr *ChainError
	if !errors.As(err, &chainErr) {
		t.Fatalf("error = %v, want ChainError", err)
	}
	if n := env.countRows(t, &types.Chain{}); n != 0 {
		t.Errorf("chain rows = %d, want 0", n)
	}
}

func TestDeleteSession_CascadesToChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "cascade")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	question := env.mustQuestion(t, session.ID, "What is RAG?")
	config := env.mustConfiguration(t, session.ID, chain.ID)
	answer := env.mustAnswer(t, question.ID, chain.ID, config.ID, "Retrieval augmented generation.", nil)
	if _, err := env.answers.CreateComment(ctx, answer.ID, AnswerCommentCreate{CommentText: "too terse"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if _, err := env.sessions.DeleteSession(ctx, session.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	for _, model := range []interface{}{
		&types.Session{}, &types.Chain{}, &types.Question{},
		&types.Configuration{}, &types.Answer{}, &types.AnswerComment{},
	} {
		if n := env.countRows(t, model); n != 0 {
			t.Errorf("%T rows = %d after session delete, want 0", model, n)
		}
	}
}

func TestDeleteQuestionsBulk_SkipsMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "bulk-delete")
	kept := env.mustQuestion(t, session.ID, "kept")
	doomed := env.mustQuestion(t, session.ID, "doomed")

	deleted, err := env.questions.DeleteQuestionsBulk(ctx, session.ID, []uuid.UUID{doomed.ID, uuid.New()})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if len(deleted) != 1 {
		t.Fatalf("deleted %d questions, want 1", len(deleted))
	}
	if deleted[0].ID != doomed.ID {
		t.Errorf("deleted id = %s, want %s", deleted[0].ID, doomed.ID)
	}

	remaining, err := env.questions.GetSessionQuestions(ctx, session.ID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != kept.ID {
		t.Errorf("remaining = %v, want only %s", remaining, kept.ID)
	}
}

func TestDeleteQuestionsBulk_OtherSessionIDSkipped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mine := env.mustSession(t, "mine")
	theirs := env.mustSession(t, "theirs")
	foreign := env.mustQuestion(t, theirs.ID, "belongs elsewhere")

	deleted, err := env.questions.DeleteQuestionsBulk(ctx, mine.ID, []uuid.UUID{foreign.ID})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if len(deleted) != 0 {
		t.Errorf("deleted %d questions, want 0", len(deleted))
	}
	if n := env.countRows(t, &types.Question{}); n != 1 {
		t.Errorf("question rows = %d, want 1", n)
	}
}

func TestInvokeChainBatch_PersistsAnswersInOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "invoke")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	q1 := env.mustQuestion(t, session.ID, "first question")
	q2 := env.mustQuestion(t, session.ID, "second question")
	config := env.mustConfiguration(t, session.ID, chain.ID)

	env.client.outputs = []string{"first answer", "second answer"}

	answers, err := env.chains.InvokeChainBatch(ctx, session.ID, chain.ID, config.ID)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("got %d answers, want 2", len(answers))
	}
	if env.client.gotChainFile != "simple_chain.py" {
		t.Errorf("chain file = %q, want %q", env.client.gotChainFile, "simple_chain.py")
	}
	if len(env.client.gotInputs) != 2 || env.client.gotInputs[0] != "first question" {
		t.Errorf("inputs = %v", env.client.gotInputs)
	}
	if env.client.gotConfigurable["temperature"] != 0.2 {
		t.Errorf("configurable = %v, want temperature 0.2", env.client.gotConfigurable)
	}

	byQuestion := map[uuid.UUID]string{}
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.GeneratedAnswer
	}
	if byQuestion[q1.ID] != "first answer" || byQuestion[q2.ID] != "second answer" {
		t.Errorf("answers misaligned with questions: %v", byQuestion)
	}
}

func TestInvokeChainBatch_NoQuestionsNoCall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "empty-invoke")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	config := env.mustConfiguration(t, session.ID, chain.ID)

	answers, err := env.chains.InvokeChainBatch(ctx, session.ID, chain.ID, config.ID)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if len(answers) != 0 {
		t.Errorf("got %d answers, want 0", len(answers))
	}
	if env.client.gotInputs != nil {
		t.Errorf("chain service was called with inputs %v", env.client.gotInputs)
	}
}

func TestInvokeChainBatch_MissingConfiguration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "missing-config")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	env.mustQuestion(t, session.ID, "orphaned question")

	_, err := env.chains.InvokeChainBatch(ctx, session.ID, chain.ID, uuid.New())
	var notFound *ConfigurationNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want ConfigurationNotFoundError", err)
	}
}

func TestCreateAnswersBulk_BadChainFailsWhole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "bulk-answers")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	question := env.mustQuestion(t, session.ID, "q")
	config := env.mustConfiguration(t, session.ID, chain.ID)

	_, err := env.answers.CreateAnswersBulk(ctx, question.ID, []AnswerCreate{
		{ChainID: chain.ID, ConfigurationID: config.ID, GeneratedAnswer: "good"},
		{ChainID: uuid.New(), ConfigurationID: config.ID, GeneratedAnswer: "bad chain"},
	})
	var notFound *ChainNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want ChainNotFoundError", err)
	}
	if n := env.countRows(t, &types.Answer{}); n != 0 {
		t.Errorf("answer rows = %d, want 0 after failed bulk create", n)
	}
}

func TestUpdateAnswerScore_WrongQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "cross-score")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	config := env.mustConfiguration(t, session.ID, chain.ID)
	q1 := env.mustQuestion(t, session.ID, "q1")
	q2 := env.mustQuestion(t, session.ID, "q2")
	answer := env.mustAnswer(t, q1.ID, chain.ID, config.ID, "text", nil)

	_, err := env.answers.UpdateAnswerScore(ctx, q2.ID, answer.ID, AnswerScoreUpdate{Score: intPtr(4)})
	var notFound *AnswerNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want AnswerNotFoundError", err)
	}
}

func TestUpdateAnswerScore_Persists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "score")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	config := env.mustConfiguration(t, session.ID, chain.ID)
	question := env.mustQuestion(t, session.ID, "q")
	answer := env.mustAnswer(t, question.ID, chain.ID, config.ID, "text", nil)

	updated, err := env.answers.UpdateAnswerScore(ctx, question.ID, answer.ID, AnswerScoreUpdate{Score: intPtr(5)})
	if err != nil {
		t.Fatalf("update score: %v", err)
	}
	if updated.Score == nil || *updated.Score != 5 {
		t.Errorf("score = %v, want 5", updated.Score)
	}
}

func TestAverageScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "avg")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	config := env.mustConfiguration(t, session.ID, chain.ID)
	question := env.mustQuestion(t, session.ID, "q")

	avg, err := env.answers.GetAverageScoreByConfiguration(ctx, config.ID)
	if err != nil {
		t.Fatalf("average with no answers: %v", err)
	}
	if avg != 0.0 {
		t.Errorf("average = %v, want 0.0 with no answers", avg)
	}

	env.mustAnswer(t, question.ID, chain.ID, config.ID, "a", intPtr(3))
	env.mustAnswer(t, question.ID, chain.ID, config.ID, "b", intPtr(5))
	env.mustAnswer(t, question.ID, chain.ID, config.ID, "c", nil) // unscored, excluded

	avg, err = env.answers.GetAverageScoreByConfiguration(ctx, config.ID)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 4.0 {
		t.Errorf("average = %v, want 4.0", avg)
	}
}

func TestComments_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "comments")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	config := env.mustConfiguration(t, session.ID, chain.ID)
	question := env.mustQuestion(t, session.ID, "q")
	answer := env.mustAnswer(t, question.ID, chain.ID, config.ID, "text", nil)

	comment, err := env.answers.CreateComment(ctx, answer.ID, AnswerCommentCreate{CommentText: "hallucinated"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	comments, err := env.answers.GetAnswerComments(ctx, answer.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 || comments[0].CommentText != "hallucinated" {
		t.Fatalf("comments = %v", comments)
	}

	updated, err := env.answers.UpdateComment(ctx, answer.ID, comment.ID, AnswerCommentUpdate{CommentText: "grounded after all"})
	if err != nil {
		t.Fatalf("update comment: %v", err)
	}
	if updated.CommentText != "grounded after all" {
		t.Errorf("comment text = %q", updated.CommentText)
	}

	if _, err := env.answers.DeleteComment(ctx, answer.ID, comment.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	if n := env.countRows(t, &types.AnswerComment{}); n != 0 {
		t.Errorf("comment rows = %d, want 0", n)
	}
}

func TestUpdateComment_WrongAnswer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session := env.mustSession(t, "cross-comment")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	config := env.mustConfiguration(t, session.ID, chain.ID)
	question := env.mustQuestion(t, session.ID, "q")
	a1 := env.mustAnswer(t, question.ID, chain.ID, config.ID, "one", nil)
	a2 := env.mustAnswer(t, question.ID, chain.ID, config.ID, "two", nil)

	comment, err := env.answers.CreateComment(ctx, a1.ID, AnswerCommentCreate{CommentText: "on a1"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	_, err = env.answers.UpdateComment(ctx, a2.ID, comment.ID, AnswerCommentUpdate{CommentText: "moved"})
	var notFound *AnswerCommentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want AnswerCommentNotFoundError", err)
	}
}

func TestCreateConfiguration_CachesSchema(t *testing.T) {
	env := newTestEnv(t)

	session := env.mustSession(t, "schema-cache")
	chain := env.mustChain(t, session.ID, "simple_chain.py")
	config := env.mustConfiguration(t, session.ID, chain.ID)

	if len(config.ConfigSchema) == 0 {
		t.Error("config schema was not cached on create")
	}
}

func TestCreateConfiguration_SchemaFailureIsNonFatal(t *testing.T) {
	env := newTestEnv(t)
	env.client.schemaErr = errors.New("chain service down")

	session := env.mustSession(t, "schema-down")
	chain := env.mustChain(t, session.ID, "simple_chain.py")

	config, err := env.configs.CreateConfiguration(context.Background(), session.ID, chain.ID, ConfigurationCreate{
		ConfigValues: map[string]interface{}{"k": 3},
	})
	if err != nil {
		t.Fatalf("create configuration: %v", err)
	}
	if len(config.ConfigSchema) != 0 {
		t.Errorf("config schema = %s, want empty", config.ConfigSchema)
	}
}

func TestGetChainSchema_MissingChain(t *testing.T) {
	env := newTestEnv(t)
	session := env.mustSession(t, "schema-missing-chain")

	_, err := env.configs.GetChainSchema(context.Background(), session.ID, uuid.New())
	var notFound *ChainNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want ChainNotFoundError", err)
	}
}
