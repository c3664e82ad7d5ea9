package services

import (
	"sld/internal/models"
	"sld/internal/providers"
	"sld/internal/structures"
	"sync"
	"time"
)

type GuardVerdict int

const (
	GuardAllow GuardVerdict = iota
	GuardDisabled
	GuardSeenMessage
	GuardCooldown
)

func (v GuardVerdict) String() string {
	switch v {
	case GuardAllow:
		return "allow"
	case GuardDisabled:
		return "disabled"
	case GuardSeenMessage:
		return "message"
	case GuardCooldown:
		return "cooldown"
	}
	return "unknown"
}

type GuardServiceInterface interface {
	Check(guildID, messageID, userID string) GuardVerdict
	MarkReplied(messageID, userID string)
}

// GuardService throttles automatic detection replies. Replied message
// IDs are remembered for the retention window (purged lazily on each
// check, no timer). The per-user cooldown map is never purged; growth
// is bounded by the active-user count, a known limitation.
type GuardService struct {
	mu       sync.Mutex
	settings *models.SettingsStore
	metrics  providers.MetricsProviderInterface

	cooldown   time.Duration
	messageTTL time.Duration

	repliedMessages map[string]time.Time
	lastUserReply   map[string]time.Time

	now func() time.Time
}

func NewGuardService(conf *structures.Config, settings *models.SettingsStore, metrics providers.MetricsProviderInterface) GuardServiceInterface {
	return &GuardService{
		settings:        settings,
		metrics:         metrics,
		cooldown:        conf.Guard.UserCooldown,
		messageTTL:      conf.Guard.MessageTTL,
		repliedMessages: make(map[string]time.Time),
		lastUserReply:   make(map[string]time.Time),
		now:             time.Now,
	}
}

// Check decides whether an automatic reply may fire. It does not record
// anything; call MarkReplied once the reply is actually sent.
func (g *GuardService) Check(guildID, messageID, userID string) GuardVerdict {
	if !g.settings.Enabled(guildID) {
		g.metrics.IncRepliesSuppressed(GuardDisabled.String())
		return GuardDisabled
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.purgeMessages(now)

	if _, seen := g.repliedMessages[messageID]; seen {
		g.metrics.IncRepliesSuppressed(GuardSeenMessage.String())
		return GuardSeenMessage
	}

	if last, ok := g.lastUserReply[userID]; ok && now.Sub(last) < g.cooldown {
		g.metrics.IncRepliesSuppressed(GuardCooldown.String())
		return GuardCooldown
	}

	return GuardAllow
}

// MarkReplied records the reply start for both suppression windows.
func (g *GuardService) MarkReplied(messageID, userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.repliedMessages[messageID] = now
	g.lastUserReply[userID] = now
}

// purgeMessages drops replied-message entries past the retention window.
// Caller holds g.mu.
func (g *GuardService) purgeMessages(now time.Time) {
	for id, at := range g.repliedMessages {
		if now.Sub(at) > g.messageTTL {
			delete(g.repliedMessages, id)
		}
	}
}
