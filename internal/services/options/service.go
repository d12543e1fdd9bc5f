package options

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/lunchwheel/internal/common/uuid"
	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/repositories/document"
	"github.com/rs/zerolog/log"
)

// service is the Synchronized Option Store. Local edits apply immediately;
// the remote document is the source of truth and replaces local state on every delivery.
type service struct {
	documentRepo document.Repository
	documentID   string
	uuid         uuid.UUID
	writeTimeout time.Duration
	origin       string

	mu             sync.RWMutex
	doc            models.SharedDocument
	subscribers    map[int]ChangeFunc
	nextSubscriber int
	unsubscribe    func() error
	started        bool
	closed         bool

	// pending writes, applied in order by a single writer
	pending    []*document.WriteInput
	wake       chan struct{}
	writerDone chan struct{}
}

// New creates a new option store
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.DocumentRepo == nil {
		return nil, ErrNilDocumentRepo
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	documentID := cfg.DocumentID
	if documentID == "" {
		documentID = DefaultDocumentID
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}

	origin := cfg.Origin
	if origin == "" {
		origin = cfg.UUIDGenerator.NewUUID()
	}

	svc := &service{
		documentRepo: cfg.DocumentRepo,
		documentID:   documentID,
		uuid:         cfg.UUIDGenerator,
		writeTimeout: writeTimeout,
		origin:       origin,
		doc:          models.SharedDocument{},
		subscribers:  make(map[int]ChangeFunc),
		wake:         make(chan struct{}, 1),
		writerDone:   make(chan struct{}),
	}
	go svc.runWriter()

	return svc, nil
}

// Start subscribes to the shared document. On failure the store stays empty.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.mu.Unlock()

	output, err := s.documentRepo.Subscribe(ctx, &document.SubscribeInput{
		DocumentID: s.documentID,
		Callback:   s.handleSnapshot,
	})
	if err != nil {
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
		return fmt.Errorf("failed to subscribe to %s: %w", s.documentID, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return output.Unsubscribe()
	}
	s.unsubscribe = output.Unsubscribe
	s.mu.Unlock()

	log.Info().
		Str("document_id", s.documentID).
		Str("origin", s.origin).
		Msg("option store subscribed")

	return nil
}

// GetOptions returns a copy of the current list for a mode
func (s *service) GetOptions(ctx context.Context, input *GetOptionsInput) (*GetOptionsOutput, error) {
	if input == nil || !input.Mode.IsValid() {
		return nil, ErrUnknownMode
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return &GetOptionsOutput{
		Options: s.doc.Options(input.Mode).Clone(),
	}, nil
}

// AddOption appends the trimmed text to the mode's list
func (s *service) AddOption(ctx context.Context, input *AddOptionInput) (*AddOptionOutput, error) {
	if input == nil || !input.Mode.IsValid() {
		return nil, ErrUnknownMode
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	list := append(s.doc.Options(input.Mode).Clone(), text)
	s.doc[input.Mode] = list

	writeID := s.persist(models.SharedDocument{input.Mode: list.Clone()})

	return &AddOptionOutput{
		Options: list.Clone(),
		Added:   text,
		WriteID: writeID,
	}, nil
}

// RemoveOption removes the option at the index; duplicates elsewhere in the list are kept
func (s *service) RemoveOption(ctx context.Context, input *RemoveOptionInput) (*RemoveOptionOutput, error) {
	if input == nil || !input.Mode.IsValid() {
		return nil, ErrUnknownMode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	current := s.doc.Options(input.Mode)
	if input.Index < 0 || input.Index >= len(current) {
		return nil, ErrIndexOutOfRange
	}

	removed := current[input.Index]
	list := make(models.OptionList, 0, len(current)-1)
	list = append(list, current[:input.Index]...)
	list = append(list, current[input.Index+1:]...)
	s.doc[input.Mode] = list

	writeID := s.persist(models.SharedDocument{input.Mode: list.Clone()})

	return &RemoveOptionOutput{
		Options: list.Clone(),
		Removed: removed,
		WriteID: writeID,
	}, nil
}

// Document returns a deep copy of every list
func (s *service) Document() models.SharedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.doc.Clone()
}

// Subscribe registers a callback for remote changes
func (s *service) Subscribe(callback ChangeFunc) func() {
	if callback == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextSubscriber
	s.nextSubscriber++
	s.subscribers[id] = callback
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Close stops the remote subscription and waits until queued writes are applied
func (s *service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	close(s.wake)
	s.mu.Unlock()

	var err error
	if unsubscribe != nil {
		err = unsubscribe()
	}

	<-s.writerDone

	return err
}

// handleSnapshot applies a delivery from the remote channel
func (s *service) handleSnapshot(snapshot *document.Snapshot) {
	doc, seed := Reconcile(snapshot)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	if seed {
		writeID := s.persist(models.DefaultDocument())
		s.mu.Unlock()

		log.Info().
			Str("document_id", s.documentID).
			Str("write_id", writeID).
			Msg("seeding shared document with defaults")
		return
	}

	s.doc = doc
	callbacks := make([]ChangeFunc, 0, len(s.subscribers))
	for _, callback := range s.subscribers {
		callbacks = append(callbacks, callback)
	}
	s.mu.Unlock()

	log.Debug().
		Str("document_id", s.documentID).
		Str("write_id", snapshot.WriteID).
		Bool("own_write", snapshot.Origin == s.origin).
		Msg("applied remote document")

	for _, callback := range callbacks {
		callback(doc.Clone())
	}
}

// persist queues a field merge write of the given modes and returns its write ID.
// Must be called with s.mu held and the store open.
func (s *service) persist(fields models.SharedDocument) string {
	writeID := s.uuid.NewUUID()
	s.pending = append(s.pending, &document.WriteInput{
		DocumentID: s.documentID,
		Fields:     fields,
		Merge:      true,
		WriteID:    writeID,
		Origin:     s.origin,
	})

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return writeID
}

// runWriter applies queued writes one at a time in the order they were issued,
// so a later write of this store never lands before an earlier one.
func (s *service) runWriter() {
	defer close(s.writerDone)

	for range s.wake {
		s.flush()
	}
	s.flush()
}

func (s *service) flush() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			return
		}
		input := s.pending[0]
		s.pending[0] = nil
		s.pending = s.pending[1:]
		s.mu.Unlock()

		s.write(input)
	}
}

func (s *service) write(input *document.WriteInput) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	if err := s.documentRepo.Write(ctx, input); err != nil {
		log.Warn().Err(err).
			Str("document_id", input.DocumentID).
			Str("write_id", input.WriteID).
			Msg("option write failed, keeping local state")
	}
}
