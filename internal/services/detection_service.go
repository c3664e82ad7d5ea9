package services

import (
	"context"
	"sld/internal/providers"
	"sld/internal/steam"
)

type DetectionOutcome int

const (
	// DetectionReplied means canonical links were produced and the guard
	// was marked; the caller should post the reply.
	DetectionReplied DetectionOutcome = iota
	// DetectionNoMatch means no pattern matched at all.
	DetectionNoMatch
	// DetectionNothingResolved means candidates were found but none of
	// them resolved to a canonical identity.
	DetectionNothingResolved
	// DetectionSuppressed means the guard vetoed the reply.
	DetectionSuppressed
)

type DetectionResult struct {
	Outcome DetectionOutcome
	Verdict GuardVerdict
	Links   []string
}

type DetectionServiceInterface interface {
	HandleMessage(ctx context.Context, guildID, messageID, userID, content string) DetectionResult
}

// DetectionService runs the automatic pipeline: extract candidates,
// resolve them, dedup by canonical identity, ask the guard, and report
// an explicit outcome. The single Discord message handler on top of it
// is the only place that decides user visibility.
type DetectionService struct {
	resolver *steam.Resolver
	guard    GuardServiceInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewDetectionService(resolver *steam.Resolver, guard GuardServiceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) DetectionServiceInterface {
	return &DetectionService{
		resolver: resolver,
		guard:    guard,
		logger:   logger,
		metrics:  metrics,
	}
}

func (d *DetectionService) HandleMessage(ctx context.Context, guildID, messageID, userID, content string) DetectionResult {
	d.metrics.IncMessagesScanned()

	candidates := steam.Extract(content)
	if candidates.Empty() {
		return DetectionResult{Outcome: DetectionNoMatch}
	}
	d.countCandidates(candidates)

	// Guard runs before resolution so suppressed messages cost no
	// external calls.
	if verdict := d.guard.Check(guildID, messageID, userID); verdict != GuardAllow {
		return DetectionResult{Outcome: DetectionSuppressed, Verdict: verdict}
	}

	links := d.canonicalLinks(ctx, candidates)
	if len(links) == 0 {
		return DetectionResult{Outcome: DetectionNothingResolved}
	}

	d.guard.MarkReplied(messageID, userID)
	d.metrics.IncRepliesSent()
	d.logger.Debugf(providers.TypeMessage, "Detected %d canonical link(s) in message %s", len(links), messageID)

	return DetectionResult{Outcome: DetectionReplied, Links: links}
}

// canonicalLinks resolves every candidate and collapses the ones that
// point at the same canonical identity. Resolution failures are skipped
// silently; automatic detection never surfaces them.
func (d *DetectionService) canonicalLinks(ctx context.Context, candidates steam.Candidates) []string {
	var links []string
	seen := make(map[string]struct{})

	profileRaw := make([]string, 0, len(candidates.ProfileIDs)+len(candidates.Vanities)+len(candidates.UserAliases))
	profileRaw = append(profileRaw, candidates.ProfileIDs...)
	profileRaw = append(profileRaw, candidates.Vanities...)
	profileRaw = append(profileRaw, candidates.UserAliases...)

	for _, raw := range profileRaw {
		id, err := d.resolver.ResolveProfile(ctx, raw)
		if err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		links = append(links, steam.ProfilePermalink(id))
	}

	groupRaw := make([]string, 0, len(candidates.GroupIDs)+len(candidates.GroupNames))
	groupRaw = append(groupRaw, candidates.GroupIDs...)
	groupRaw = append(groupRaw, candidates.GroupNames...)

	for _, raw := range groupRaw {
		ref, ok := steam.ParseGroup(raw)
		if !ok {
			continue
		}
		if _, dup := seen[ref.Key]; dup {
			continue
		}
		seen[ref.Key] = struct{}{}
		links = append(links, ref.URL)
	}

	return links
}

func (d *DetectionService) countCandidates(c steam.Candidates) {
	d.metrics.IncCandidates("profile_id", len(c.ProfileIDs))
	d.metrics.IncCandidates("vanity", len(c.Vanities))
	d.metrics.IncCandidates("user_alias", len(c.UserAliases))
	d.metrics.IncCandidates("group_name", len(c.GroupNames))
	d.metrics.IncCandidates("group_id", len(c.GroupIDs))
}
