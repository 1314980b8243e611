package sweep

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pmelby/roomscan/internal/webex"
)

const (
	// DefaultPageSize is the per-room message fetch bound.
	DefaultPageSize = 100

	// defaultMaxConcurrent bounds the per-room fan-out.
	defaultMaxConcurrent = 8
)

// MessageLister is the slice of the provider client the resolver needs.
type MessageLister interface {
	ListMessages(ctx context.Context, roomID string, max int) ([]webex.Message, error)
}

// ResolveRoom fetches up to pageSize recent messages for one room and keeps
// those created strictly after the room's last-seen timestamp by someone
// other than the current user. Retained messages are sorted oldest first.
func ResolveRoom(ctx context.Context, lister MessageLister, room Room, me string, pageSize int) (Resolved, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	msgs, err := lister.ListMessages(ctx, room.ID, pageSize)
	if err != nil {
		return Resolved{Room: room}, err
	}

	var unread []webex.Message
	mentioned := false
	for _, m := range msgs {
		if !ParseTimestamp(m.Created).After(room.LastSeen) {
			continue
		}
		if m.PersonID != "" && m.PersonID == me {
			continue // own messages are never unread
		}
		unread = append(unread, m)
		if !mentioned {
			for _, p := range m.MentionedPeople {
				if p == me {
					mentioned = true
					break
				}
			}
		}
	}

	sort.SliceStable(unread, func(i, j int) bool {
		return ParseTimestamp(unread[i].Created).Before(ParseTimestamp(unread[j].Created))
	})

	return Resolved{Room: room, Messages: unread, MentionedMe: mentioned}, nil
}

// ResolveAll resolves every room concurrently with bounded fan-out. Each
// goroutine writes only to its own result slot, so no locking is needed. A
// failed fetch degrades that room to an empty unread set and logs a warning;
// it never drops the room or fails the batch.
func ResolveAll(ctx context.Context, lister MessageLister, rooms []Room, me string, pageSize, maxConcurrent int, log zerolog.Logger) []Resolved {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	results := make([]Resolved, len(rooms))
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrent)

	for i, room := range rooms {
		wg.Add(1)
		go func(idx int, r Room) {
			defer wg.Done()
			sem <- struct{}{}        // acquire semaphore
			defer func() { <-sem }() // release semaphore

			resolved, err := ResolveRoom(ctx, lister, r, me, pageSize)
			if err != nil {
				log.Warn().Str("room", r.ID).Err(err).Msg("message fetch failed; room degraded to empty unread set")
			}
			results[idx] = resolved
		}(i, room)
	}

	wg.Wait()
	return results
}
