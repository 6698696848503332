package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/pct-cclausen/huntkeeper/internal/model"
	"github.com/pct-cclausen/huntkeeper/internal/store"
	"github.com/pct-cclausen/huntkeeper/pkg/crypto"
	"github.com/pct-cclausen/huntkeeper/pkg/token"
)

type GameService interface {
	// Issue registers a new code and returns it with the signed token to
	// print into the QR image. Returns ErrUnauthorized when key does not
	// match the configured game password.
	Issue(ctx context.Context, description string, points int, key string) (*model.Code, string, error)

	// Redeem scores a scanned token for a group. Bad tokens and unknown
	// codes are not errors: they come back as an empty result. An error
	// means the snapshot could not be persisted.
	Redeem(ctx context.Context, tokenStr string, groupName string) (*model.RedemptionResult, error)

	// Standings returns the leaderboard, highest total first.
	Standings(ctx context.Context) []model.Standing

	// Counts reports how many codes and events were restored, for the
	// startup log line.
	Counts() (codes int, events int)
}

type gameService struct {
	store        store.SnapshotStore
	tokens       *token.Manager
	passwordHash string

	// mu guards codes, events and nextID. Redemption is check-then-append,
	// so the whole read-mutate-persist sequence must be one critical
	// section or two concurrent scans of the same code could both score.
	mu     sync.Mutex
	codes  []model.Code
	events []model.ScanEvent
	nextID int
}

// NewGameService restores state from the snapshot store. The id counter is
// seeded past the highest restored id, never derived from registry length,
// so ids are unique even against a snapshot with gaps.
func NewGameService(ctx context.Context, snapStore store.SnapshotStore, tokens *token.Manager, passwordHash string) (GameService, error) {
	snap, err := snapStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game state: %w", err)
	}

	nextID := 1
	for _, c := range snap.Codes {
		if c.ID >= nextID {
			nextID = c.ID + 1
		}
	}

	return &gameService{
		store:        snapStore,
		tokens:       tokens,
		passwordHash: passwordHash,
		codes:        snap.Codes,
		events:       snap.Events,
		nextID:       nextID,
	}, nil
}

func (s *gameService) Issue(ctx context.Context, description string, points int, key string) (*model.Code, string, error) {
	if !crypto.CheckPassword(key, s.passwordHash) {
		return nil, "", ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := model.Code{
		ID:          s.nextID,
		Description: description,
		Points:      points,
	}
	s.codes = append(s.codes, code)

	if err := s.persistLocked(ctx); err != nil {
		s.codes = s.codes[:len(s.codes)-1]
		return nil, "", err
	}
	s.nextID++

	signed, err := s.tokens.Mint(code.ID)
	if err != nil {
		return nil, "", fmt.Errorf("mint token for code %d: %w", code.ID, err)
	}
	return &code, signed, nil
}

func (s *gameService) Redeem(ctx context.Context, tokenStr string, groupName string) (*model.RedemptionResult, error) {
	result := &model.RedemptionResult{}

	codeID, err := s.tokens.Verify(tokenStr)
	if err != nil {
		if errors.Is(err, token.ErrInvalidToken) {
			return result, nil
		}
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.lookupLocked(codeID)
	if !ok {
		return result, nil
	}
	result.QRCodeFound = &code

	for _, e := range s.events {
		if e.QRID == code.ID && e.GroupName == groupName {
			return result, nil
		}
	}

	s.events = append(s.events, model.ScanEvent{
		GroupName: groupName,
		Points:    code.Points,
		QRID:      code.ID,
	})
	if err := s.persistLocked(ctx); err != nil {
		s.events = s.events[:len(s.events)-1]
		return nil, err
	}
	result.ScannedFirst = true
	return result, nil
}

func (s *gameService) Standings(_ context.Context) []model.Standing {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[string]int)
	for _, e := range s.events {
		totals[e.GroupName] += e.Points
	}

	standings := make([]model.Standing, 0, len(totals))
	for name, points := range totals {
		standings = append(standings, model.Standing{Name: name, Points: points})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].Name < standings[j].Name
	})
	return standings
}

func (s *gameService) Counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes), len(s.events)
}

func (s *gameService) lookupLocked(id int) (model.Code, bool) {
	for _, c := range s.codes {
		if c.ID == id {
			return c, true
		}
	}
	return model.Code{}, false
}

func (s *gameService) persistLocked(ctx context.Context) error {
	snap := model.Snapshot{Events: s.events, Codes: s.codes}
	if err := s.store.Save(ctx, snap.Clone()); err != nil {
		return fmt.Errorf("persist game state: %w", err)
	}
	return nil
}
