// Package scan orchestrates duplicate scans: enumerate candidates, consult
// the fingerprint cache, fingerprint the misses, group near duplicates and
// flush the cache back to disk.
package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.trai.ch/lookalike/internal/core/domain"
	"go.trai.ch/lookalike/internal/core/ports"
	"go.trai.ch/lookalike/internal/engine/grouper"
	"go.trai.ch/lookalike/internal/engine/pool"
)

// Stage names, in execution order.
const (
	StageEnumerate   = "enumerate"
	StageCache       = "cache"
	StageFingerprint = "fingerprint"
	StageGroup       = "group"
	StageFlush       = "flush"
)

// Stages returns the scan stages in execution order, as announced to the
// renderer before the first stage starts.
func Stages() []string {
	return []string{StageEnumerate, StageCache, StageFingerprint, StageGroup, StageFlush}
}

// Scanner runs duplicate scans. Scanners are built per run because the
// tracer is bound to the renderer of that run.
type Scanner struct {
	store      ports.CacheStore
	enumerator ports.Enumerator
	source     ports.ImageSource
	logger     ports.Logger
	tracer     ports.Tracer
	thresholds domain.Thresholds
}

// NewScanner creates a Scanner.
func NewScanner(
	store ports.CacheStore,
	enumerator ports.Enumerator,
	source ports.ImageSource,
	logger ports.Logger,
	tracer ports.Tracer,
	thresholds domain.Thresholds,
) *Scanner {
	return &Scanner{
		store:      store,
		enumerator: enumerator,
		source:     source,
		logger:     logger,
		tracer:     tracer,
		thresholds: thresholds,
	}
}

// Run executes one scan. Cancelling ctx interrupts the scan cooperatively:
// images already fingerprinted are grouped and flushed to the cache, and the
// partial result is returned together with ErrScanInterrupted so the next
// run resumes where this one stopped.
func (s *Scanner) Run(ctx context.Context, req domain.ScanRequest) (*domain.ScanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	scope := domain.ScanScope(req.Folders)
	s.logger.Debug(fmt.Sprintf("scanning %d folder(s), scope %s", len(req.Folders), scope))

	s.tracer.EmitPlan(ctx, Stages())

	records, issues, err := s.enumerate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Join(domain.ErrScanInterrupted, err)
		}
		return nil, err
	}

	hits, misses := s.partition(ctx, req, records)

	fingerprinted, computed, failures, issues, err := s.fingerprint(ctx, req, hits, misses, issues)
	if err != nil {
		return nil, err
	}
	interrupted := ctx.Err() != nil

	groups := s.group(ctx, fingerprinted, req.Sensitivity)

	if err := s.flush(ctx, scope); err != nil {
		issues = append(issues, domain.Issue{Path: s.store.Location(), Err: err})
	}

	duplicates := 0
	for _, g := range groups {
		duplicates += g.Len()
	}
	result := &domain.ScanResult{
		Groups: groups,
		Issues: issues,
		Stats: domain.ScanStats{
			Candidates: len(records),
			CacheHits:  len(hits),
			Computed:   computed,
			Failures:   failures,
			Duplicates: duplicates,
			Elapsed:    time.Since(start),
		},
	}

	if interrupted {
		return result, errors.Join(domain.ErrScanInterrupted, ctx.Err())
	}
	return result, nil
}

// enumerate walks the requested folders and reports the candidate count.
func (s *Scanner) enumerate(ctx context.Context, req domain.ScanRequest) ([]domain.ImageRecord, []domain.Issue, error) {
	spanCtx, span := s.tracer.Start(ctx, StageEnumerate)
	defer span.End()

	records, issues, err := s.enumerator.Enumerate(spanCtx, req)
	if err != nil {
		span.RecordError(err)
		return nil, nil, err
	}

	span.SetAttribute("candidates", len(records))
	_, _ = fmt.Fprintf(span, "found %d candidate image(s)\n", len(records))
	for _, issue := range issues {
		_, _ = fmt.Fprintf(span, "skipped %s: %s\n", issue.Path, issue.Err)
	}
	return records, issues, nil
}

// partition splits records into cache hits and records that need a fresh
// fingerprint. An entry counts as a hit only when size and modification time
// still match exactly.
func (s *Scanner) partition(ctx context.Context, req domain.ScanRequest, records []domain.ImageRecord) ([]grouper.Fingerprinted, []domain.ImageRecord) {
	_, span := s.tracer.Start(ctx, StageCache)
	defer span.End()

	if req.NoCache {
		span.SetAttribute("bypassed", true)
		_, _ = fmt.Fprintf(span, "cache bypassed, fingerprinting all %d image(s)\n", len(records))
		return nil, records
	}

	var hits []grouper.Fingerprinted
	var misses []domain.ImageRecord
	for _, rec := range records {
		entry, ok := s.store.Lookup(rec.Path)
		if ok && entry.Matches(rec) {
			hits = append(hits, grouper.Fingerprinted{Record: rec, Fingerprint: entry.Fingerprint})
			continue
		}
		misses = append(misses, rec)
	}

	span.SetAttribute("hits", len(hits))
	span.SetAttribute("misses", len(misses))
	_, _ = fmt.Fprintf(span, "%d cached, %d to fingerprint\n", len(hits), len(misses))
	return hits, misses
}

// fingerprint runs the worker pool over the cache misses and merges every
// completed outcome into the cache, including when the scan is interrupted
// halfway through.
func (s *Scanner) fingerprint(
	ctx context.Context,
	req domain.ScanRequest,
	hits []grouper.Fingerprinted,
	misses []domain.ImageRecord,
	issues []domain.Issue,
) ([]grouper.Fingerprinted, int, int, []domain.Issue, error) {
	_, span := s.tracer.Start(ctx, StageFingerprint)
	defer span.End()

	fingerprinted := make([]grouper.Fingerprinted, len(hits), len(hits)+len(misses))
	copy(fingerprinted, hits)

	computed, failures := 0, 0
	if len(misses) > 0 {
		workers := domain.PoolSize(req.Workers)
		span.SetAttribute("workers", workers)

		outcomes, err := pool.New(s.source, workers).Run(ctx, misses)
		if err != nil {
			span.RecordError(err)
			return nil, 0, 0, nil, err
		}

		done, lastDecile := 0, 0
		for outcome := range outcomes {
			done++
			if outcome.Err != nil {
				failures++
				issues = append(issues, domain.Issue{Path: outcome.Record.Path, Err: outcome.Err})
				_, _ = fmt.Fprintf(span, "cannot decode %s\n", outcome.Record.Path)
				continue
			}

			computed++
			s.store.Put(outcome.Record.Path, domain.CacheEntry{
				Size:        outcome.Record.Size,
				ModTime:     outcome.Record.ModTime,
				Fingerprint: outcome.Fingerprint,
			})
			fingerprinted = append(fingerprinted, grouper.Fingerprinted{
				Record:      outcome.Record,
				Fingerprint: outcome.Fingerprint,
			})

			if decile := done * 10 / len(misses); decile > lastDecile {
				lastDecile = decile
				_, _ = fmt.Fprintf(span, "fingerprinted %d/%d\n", done, len(misses))
			}
		}
	}

	span.SetAttribute("computed", computed)
	span.SetAttribute("failures", failures)
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
	}
	return fingerprinted, computed, failures, issues, nil
}

// group clusters the fingerprinted images at the threshold selected by the
// request sensitivity.
func (s *Scanner) group(ctx context.Context, fingerprinted []grouper.Fingerprinted, sensitivity domain.Sensitivity) []domain.DuplicateGroup {
	_, span := s.tracer.Start(ctx, StageGroup)
	defer span.End()

	threshold := s.thresholds.For(sensitivity)
	span.SetAttribute("threshold", threshold)

	groups := grouper.Group(fingerprinted, threshold)
	span.SetAttribute("groups", len(groups))
	_, _ = fmt.Fprintf(span, "%d duplicate group(s) at distance <= %d\n", len(groups), threshold)
	return groups
}

// flush persists the cache snapshot. A failed flush costs a recompute on the
// next run, so it degrades the scan to a reported issue instead of failing
// it.
func (s *Scanner) flush(ctx context.Context, scope string) error {
	_, span := s.tracer.Start(ctx, StageFlush)
	defer span.End()

	s.store.SetScope(scope)
	if err := s.store.Flush(); err != nil {
		span.RecordError(err)
		s.logger.Error(err)
		return err
	}
	span.SetAttribute("entries", s.store.Len())
	_, _ = fmt.Fprintf(span, "cache holds %d fingerprint(s) at %s\n", s.store.Len(), s.store.Location())
	return nil
}
