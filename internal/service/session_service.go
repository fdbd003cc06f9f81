package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"restaurant-catalog/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound    = errors.New("browser session not found")
	ErrRestaurantNotFound = errors.New("restaurant not found in catalog")
)

type SessionOptions struct {
	RatingMode       RatingMode
	DefaultThreshold float64
	// MaxSessions caps open sessions; the least recently used one is evicted
	// to make room. Zero means no cap.
	MaxSessions int
}

type session struct {
	browser  *Browser
	lastSeen time.Time
}

// SessionService keeps one Browser per client session. Each session performs
// its own load on Open and is torn down on Close.
type SessionService struct {
	loader    Loader
	journal   LoadJournal
	publisher EventPublisher
	qr        QRGenerator
	opts      SessionOptions
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionService wires the session store. journal, publisher and qr may be nil.
func NewSessionService(loader Loader, journal LoadJournal, publisher EventPublisher, qr QRGenerator, opts SessionOptions, logger *zap.Logger) *SessionService {
	if opts.DefaultThreshold <= 0 {
		opts.DefaultThreshold = DefaultRatingThreshold
	}
	if opts.RatingMode == "" {
		opts.RatingMode = RatingModeView
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		loader:    loader,
		journal:   journal,
		publisher: publisher,
		qr:        qr,
		opts:      opts,
		logger:    logger,
		sessions:  make(map[string]*session),
	}
}

// Open creates a session and mounts its browser. The load is detached from
// ctx's cancellation so it outlives the request that opened the session.
func (s *SessionService) Open(ctx context.Context) string {
	id := uuid.NewString()
	log := s.logger.With(zap.String("session_id", id))

	loader := &journaledLoader{
		inner:     s.loader,
		journal:   s.journal,
		sessionID: id,
		logger:    log,
	}
	browser := NewBrowser(loader, s.opts.RatingMode, log)

	s.mu.Lock()
	var evicted *Browser
	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		evicted = s.evictOldestLocked()
	}
	s.sessions[id] = &session{browser: browser, lastSeen: time.Now()}
	s.mu.Unlock()

	if evicted != nil {
		evicted.Unmount()
	}
	browser.Mount(context.WithoutCancel(ctx))
	log.Info("Browser session opened")
	return id
}

func (s *SessionService) Close(sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.browser.Unmount()
	s.logger.Info("Browser session closed", zap.String("session_id", sessionID))
	return nil
}

// CloseAll unmounts every open session.
func (s *SessionService) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.browser.Unmount()
	}
}

// Len reports how many sessions are open.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Browser returns the live browser for a session and marks the session as used.
func (s *SessionService) Browser(sessionID string) (*Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = time.Now()
	return sess.browser, nil
}

// EvictIdle closes every session unused for longer than maxIdle and returns
// how many were closed.
func (s *SessionService) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	var idle []*Browser
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			idle = append(idle, sess.browser)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, browser := range idle {
		browser.Unmount()
	}
	if len(idle) > 0 {
		s.logger.Info("Evicted idle browser sessions", zap.Int("evicted", len(idle)))
	}
	return len(idle)
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (s *SessionService) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.EvictIdle(maxIdle)
		}
	}
}

func (s *SessionService) evictOldestLocked() *Browser {
	var oldestID string
	var oldest *session
	for id, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, sess
		}
	}
	if oldest == nil {
		return nil
	}
	delete(s.sessions, oldestID)
	s.logger.Info("Evicted least recently used browser session", zap.String("session_id", oldestID))
	return oldest.browser
}

func (s *SessionService) State(sessionID string) (domain.BrowserState, error) {
	browser, err := s.Browser(sessionID)
	if err != nil {
		return domain.BrowserState{}, err
	}
	return browser.Snapshot(), nil
}

// ApplyRatingFilter uses the configured default threshold when threshold is nil.
func (s *SessionService) ApplyRatingFilter(ctx context.Context, sessionID string, threshold *float64) (domain.BrowserState, error) {
	browser, err := s.Browser(sessionID)
	if err != nil {
		return domain.BrowserState{}, err
	}

	t := s.opts.DefaultThreshold
	if threshold != nil {
		t = *threshold
	}

	before, state, err := browser.applyRating(t)
	if err != nil {
		return domain.BrowserState{}, err
	}

	s.publish(ctx, domain.FilterEvent{
		Type:      "filter_applied",
		SessionID: sessionID,
		Filter:    "rating",
		Threshold: t,
		Before:    before,
		After:     state.Shown,
		Timestamp: time.Now(),
	})
	return state, nil
}

func (s *SessionService) SetQuery(sessionID, query string) (domain.BrowserState, error) {
	browser, err := s.Browser(sessionID)
	if err != nil {
		return domain.BrowserState{}, err
	}
	browser.SetQuery(query)
	return browser.Snapshot(), nil
}

// ApplyNameFilter filters with query, or with the held query when query is nil.
func (s *SessionService) ApplyNameFilter(ctx context.Context, sessionID string, query *string) (domain.BrowserState, error) {
	browser, err := s.Browser(sessionID)
	if err != nil {
		return domain.BrowserState{}, err
	}

	before, state, err := browser.applyName(query)
	if err != nil {
		return domain.BrowserState{}, err
	}

	s.publish(ctx, domain.FilterEvent{
		Type:      "filter_applied",
		SessionID: sessionID,
		Filter:    "name",
		Query:     state.Query,
		Before:    before,
		After:     state.Shown,
		Timestamp: time.Now(),
	})
	return state, nil
}

// RestaurantQRCode renders a QR code for a restaurant in the session's canonical list.
func (s *SessionService) RestaurantQRCode(sessionID, restaurantID string) ([]byte, error) {
	browser, err := s.Browser(sessionID)
	if err != nil {
		return nil, err
	}
	if s.qr == nil {
		return nil, errors.New("qr code generation is disabled")
	}

	for _, r := range browser.Canonical() {
		if r.ID == restaurantID {
			return s.qr.Generate(r)
		}
	}
	return nil, ErrRestaurantNotFound
}

func (s *SessionService) RecentLoads(ctx context.Context, limit int) ([]domain.LoadRecord, error) {
	if s.journal == nil {
		return []domain.LoadRecord{}, nil
	}
	return s.journal.RecentLoads(ctx, limit)
}

func (s *SessionService) publish(ctx context.Context, event domain.FilterEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishFilterEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish filter event",
			zap.String("session_id", event.SessionID),
			zap.String("filter", event.Filter),
			zap.Error(err))
	}
}

// journaledLoader records every load outcome of one session.
type journaledLoader struct {
	inner     Loader
	journal   LoadJournal
	sessionID string
	logger    *zap.Logger
}

func (l *journaledLoader) Load(ctx context.Context) domain.LoadResult {
	started := time.Now()
	result := l.inner.Load(ctx)
	if l.journal == nil || ctx.Err() != nil {
		return result
	}

	record := &domain.LoadRecord{
		SessionID:   l.sessionID,
		Status:      string(result.Status),
		Restaurants: len(result.Restaurants),
		ShapeMiss:   result.ShapeMiss,
		FromCache:   result.FromCache,
		DurationMS:  time.Since(started).Milliseconds(),
	}
	if d, ok := l.inner.(interface{ Source() string }); ok {
		record.SourceURL = d.Source()
	}
	if result.Err != nil {
		record.Error = result.Err.Error()
	}
	if err := l.journal.RecordLoad(ctx, record); err != nil {
		l.logger.Warn("Failed to record catalog load", zap.Error(err))
	}
	return result
}
