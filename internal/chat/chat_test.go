package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dkasturi/docuchat/internal/chat"
	"github.com/dkasturi/docuchat/internal/data/store"
	"github.com/dkasturi/docuchat/internal/domain/chatModel"
	"github.com/dkasturi/docuchat/internal/domain/commonModels"
	"github.com/dkasturi/docuchat/internal/responder"
)

func TestStart_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		assetId     string
		setupMock   func(m *MockSessionStore)
		expectedErr error
	}{
		{
			name:    "Success",
			assetId: "asset-1",
		},
		{
			name:    "Unvalidated_Asset_Id_Is_Accepted",
			assetId: "never-uploaded",
		},
		{
			name:        "Empty_Asset_Id",
			assetId:     "",
			expectedErr: commonModels.ErrInvalidArgument,
		},
		{
			name:        "Whitespace_Asset_Id",
			assetId:     "   ",
			expectedErr: commonModels.ErrInvalidArgument,
		},
		{
			name:    "Store_Failure_Propagates",
			assetId: "asset-1",
			setupMock: func(m *MockSessionStore) {
				m.OnCreateSession = func(ctx context.Context, chatId string, assetId string) error {
					return errors.New("store offline")
				}
			},
			expectedErr: errors.New("store offline"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockSessionStore{}
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}
			manager := chat.NewManager(mock)

			chatId, err := manager.Start(context.Background(), tt.assetId)

			if tt.expectedErr != nil {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			if chatId == "" {
				t.Error("Start returned an empty chat id")
			}
		})
	}
}

func TestStart_GeneratesFreshIds(t *testing.T) {
	var created []string
	mock := &MockSessionStore{
		OnCreateSession: func(ctx context.Context, chatId string, assetId string) error {
			created = append(created, chatId)
			return nil
		},
	}
	manager := chat.NewManager(mock)

	manager.Start(context.Background(), "asset-1")
	manager.Start(context.Background(), "asset-1")

	if len(created) != 2 || created[0] == created[1] {
		t.Errorf("Expected two distinct chat ids, got %v", created)
	}
}

func TestMessage_EchoFlow(t *testing.T) {
	sessions := store.InitInMemorySessionStore()
	manager := chat.NewManager(sessions)
	pipeline := chat.NewPipeline(sessions, responder.NewEcho())
	ctx := context.Background()

	chatId, err := manager.Start(ctx, "asset-1")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	response, err := pipeline.Message(ctx, chatId, "hi")
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}
	if response != "ECHO: hi" {
		t.Errorf("Response got %q, want %q", response, "ECHO: hi")
	}

	if _, err := pipeline.Message(ctx, chatId, "how are you?"); err != nil {
		t.Fatalf("Second message failed: %v", err)
	}

	history, err := manager.History(ctx, chatId)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	expected := []chatModel.HistoryEntry{
		{User: "hi", Bot: "ECHO: hi"},
		{User: "how are you?", Bot: "ECHO: how are you?"},
	}
	if len(history) != len(expected) {
		t.Fatalf("History length got %d, want %d", len(history), len(expected))
	}
	for i, entry := range expected {
		if history[i] != entry {
			t.Errorf("History[%d] got %+v, want %+v", i, history[i], entry)
		}
	}
}

func TestMessage_Failures(t *testing.T) {
	tests := []struct {
		name        string
		chatId      string
		message     string
		setupMock   func(m *MockSessionStore)
		expectedErr error
	}{
		{
			name:        "Empty_Chat_Id",
			chatId:      "",
			message:     "hi",
			expectedErr: commonModels.ErrInvalidArgument,
		},
		{
			name:        "Empty_Message",
			chatId:      "c1",
			message:     "",
			expectedErr: commonModels.ErrInvalidArgument,
		},
		{
			name:    "Unknown_Chat_Id",
			chatId:  "ghost",
			message: "hi",
			setupMock: func(m *MockSessionStore) {
				m.OnGetBinding = func(ctx context.Context, chatId string) (string, error) {
					return "", commonModels.ErrNotFound
				}
			},
			expectedErr: commonModels.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appended := false
			mock := &MockSessionStore{
				OnAppendExchange: func(ctx context.Context, chatId string, entry chatModel.HistoryEntry) error {
					appended = true
					return nil
				},
			}
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}
			pipeline := chat.NewPipeline(mock, responder.NewEcho())

			_, err := pipeline.Message(context.Background(), tt.chatId, tt.message)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("Got %v, want %v", err, tt.expectedErr)
			}
			if appended {
				t.Error("A failed message must not reach the history")
			}
		})
	}
}

func TestMessage_ResponderFailureLeavesHistoryUntouched(t *testing.T) {
	appended := false
	sessions := &MockSessionStore{
		OnAppendExchange: func(ctx context.Context, chatId string, entry chatModel.HistoryEntry) error {
			appended = true
			return nil
		},
	}
	failing := &MockResponder{
		OnRespond: func(ctx context.Context, assetId string, userMessage string) (string, error) {
			return "", errors.New("provider down")
		},
	}
	pipeline := chat.NewPipeline(sessions, failing)

	if _, err := pipeline.Message(context.Background(), "c1", "hi"); err == nil {
		t.Fatal("Expected an error")
	}
	if appended {
		t.Error("A failed response must not reach the history")
	}
}

func TestStream_ChunksConcatenateToFullResponse(t *testing.T) {
	sessions := store.InitInMemorySessionStore()
	manager := chat.NewManager(sessions)
	pipeline := chat.NewPipeline(sessions, responder.NewEcho())
	ctx := context.Background()

	chatId, _ := manager.Start(ctx, "asset-1")

	var chunks []string
	err := pipeline.Stream(ctx, chatId, "hello", func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	var joined string
	for _, c := range chunks {
		if len([]rune(c)) != 1 {
			t.Errorf("Chunk %q is not a single character", c)
		}
		joined += c
	}
	if joined != "ECHO: hello" {
		t.Errorf("Concatenated chunks got %q, want %q", joined, "ECHO: hello")
	}

	history, _ := manager.History(ctx, chatId)
	if len(history) != 1 {
		t.Fatalf("History length got %d, want 1", len(history))
	}
	if history[0] != (chatModel.HistoryEntry{User: "hello", Bot: "ECHO: hello"}) {
		t.Errorf("History got %+v", history[0])
	}
}

func TestStream_DisconnectStillRecordsExchange(t *testing.T) {
	sessions := store.InitInMemorySessionStore()
	manager := chat.NewManager(sessions)
	pipeline := chat.NewPipeline(sessions, responder.NewEcho())
	ctx := context.Background()

	chatId, _ := manager.Start(ctx, "asset-1")

	emitted := 0
	err := pipeline.Stream(ctx, chatId, "hello", func(chunk string) error {
		emitted++
		if emitted >= 3 {
			return errors.New("receiver gone")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("A disconnect must not fail the stream: %v", err)
	}
	if emitted != 3 {
		t.Errorf("Expected emission to stop at the disconnect, got %d chunks", emitted)
	}

	history, _ := manager.History(ctx, chatId)
	if len(history) != 1 || history[0].Bot != "ECHO: hello" {
		t.Errorf("Full exchange missing from history after disconnect: %+v", history)
	}
}

func TestStream_ValidationFailureEmitsNothing(t *testing.T) {
	pipeline := chat.NewPipeline(&MockSessionStore{}, responder.NewEcho())

	emitted := 0
	err := pipeline.Stream(context.Background(), "", "hi", func(chunk string) error {
		emitted++
		return nil
	})
	if !errors.Is(err, commonModels.ErrInvalidArgument) {
		t.Errorf("Got %v, want ErrInvalidArgument", err)
	}
	if emitted != 0 {
		t.Errorf("Expected no chunks before validation, got %d", emitted)
	}
}

func TestStream_MatchesSynchronousResponse(t *testing.T) {
	sessions := store.InitInMemorySessionStore()
	manager := chat.NewManager(sessions)
	pipeline := chat.NewPipeline(sessions, responder.NewEcho())
	ctx := context.Background()

	syncChat, _ := manager.Start(ctx, "asset-1")
	streamChat, _ := manager.Start(ctx, "asset-1")

	syncResponse, err := pipeline.Message(ctx, syncChat, "same message")
	if err != nil {
		t.Fatalf("Message failed: %v", err)
	}

	var streamed string
	if err := pipeline.Stream(ctx, streamChat, "same message", func(chunk string) error {
		streamed += chunk
		return nil
	}); err != nil {
		t.Fatalf("Stream failed: %v", err)
	}

	if streamed != syncResponse {
		t.Errorf("Streamed %q differs from synchronous %q", streamed, syncResponse)
	}
}
