package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another request holds the doctor-slot.
var ErrSlotHeld = fmt.Errorf("%w: slot is being reserved by another request", ErrSlotConflict)

// RedisSlotHoldKeyPrefix namespaces advisory holds: appointment:hold:<doctor>:<date>:<time>
const RedisSlotHoldKeyPrefix = "appointment:hold:"

// releaseHoldScript deletes the hold only if it still carries our token, so
// an expired-and-reacquired hold is never released by the previous owner.
var releaseHoldScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// SlotHold is an acquired advisory hold.
type SlotHold struct {
	key   string
	token string
}

// SlotHoldService keeps concurrent requests from racing into the same
// doctor-slot transaction. It is advisory only: the database constraints
// remain the authority, and any Redis failure degrades to "no hold".
type SlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

// NewSlotHoldService returns a service that is a no-op when redisClient is nil.
func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotHoldService {
	return &SlotHoldService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Acquire takes the hold for the doctor-slot. A nil hold with a nil error
// means holds are unavailable and the caller proceeds without one.
func (s *SlotHoldService) Acquire(ctx context.Context, doctorID int64, date time.Time, slot string) (*SlotHold, error) {
	if s == nil || s.redisClient == nil {
		return nil, nil
	}

	hold := &SlotHold{
		key:   slotHoldKey(doctorID, date, slot),
		token: uuid.NewString(),
	}

	ok, err := s.redisClient.SetNX(ctx, hold.key, hold.token, s.ttl).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire slot hold %s, continuing without it: %+v", hold.key, err)
		return nil, nil
	}
	if !ok {
		return nil, ErrSlotHeld
	}

	s.log.Debugf("Acquired slot hold %s", hold.key)
	return hold, nil
}

// Release drops a hold taken by Acquire. Safe to call with a nil hold.
func (s *SlotHoldService) Release(ctx context.Context, hold *SlotHold) {
	if s == nil || s.redisClient == nil || hold == nil {
		return
	}

	if err := releaseHoldScript.Run(ctx, s.redisClient, []string{hold.key}, hold.token).Err(); err != nil {
		// the TTL cleans up after us
		s.log.Warnf("Failed to release slot hold %s: %+v", hold.key, err)
	}
}

func slotHoldKey(doctorID int64, date time.Time, slot string) string {
	return fmt.Sprintf("%s%d:%s:%s", RedisSlotHoldKeyPrefix, doctorID, date.Format("2006-01-02"), slot)
}
