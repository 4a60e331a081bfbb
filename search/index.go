package search

import (
	"chat-poll/domain"
	"chat-poll/domain/event"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/blugelabs/bluge"
)

const (
	fieldChat    = "chat"
	fieldContent = "content"
)

// Index is the full-text index of message contents. It is an EventSink:
// every committed message reaches it through the event fan-out, so a
// message becomes searchable shortly after it was appended.
type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewIndex(writer *bluge.Writer, log *slog.Logger) *Index {
	return &Index{writer: writer, log: log}
}

// Open opens or creates the on-disk index at path.
func Open(path string, log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	return NewIndex(writer, log), nil
}

func (i *Index) Consume(ctx context.Context, e event.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	appended, ok := e.(event.MessageAppended)
	if !ok {
		return nil
	}
	return i.Add(appended.Chat, appended.ID, appended.Content)
}

// Add indexes a message. Indexing the same id twice replaces the document.
func (i *Index) Add(chatID domain.ChatID, id domain.MessageID, content string) error {
	doc := bluge.NewDocument(strconv.FormatInt(int64(id), 10)).
		AddField(bluge.NewKeywordField(fieldChat, strconv.FormatInt(int64(chatID), 10))).
		AddField(bluge.NewTextField(fieldContent, content))
	if err := i.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index message %d: %w", id, err)
	}
	i.log.Debug("Message indexed", "chat_id", chatID, "message_id", id)
	return nil
}

// Search returns the ids of the best matching messages of one chat,
// ascending.
func (i *Index) Search(ctx context.Context, chatID domain.ChatID, terms string, limit int) ([]domain.MessageID, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open index reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField(fieldContent)).
		AddMust(bluge.NewTermQuery(strconv.FormatInt(int64(chatID), 10)).SetField(fieldChat))

	matches, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, fmt.Errorf("search chat %d: %w", chatID, err)
	}

	var ids []domain.MessageID
	match, err := matches.Next()
	for err == nil && match != nil {
		var id int64
		var parseErr error
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				id, parseErr = strconv.ParseInt(string(value), 10, 64)
				return false
			}
			return true
		})
		if err != nil {
			break
		}
		if parseErr != nil {
			return nil, fmt.Errorf("malformed document id: %w", parseErr)
		}
		ids = append(ids, domain.MessageID(id))
		match, err = matches.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("read search results: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}

func (i *Index) Close() error {
	return i.writer.Close()
}
