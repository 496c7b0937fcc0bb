package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ctc-parts/catalog-importer/constants"
	"github.com/ctc-parts/catalog-importer/internal/catalog"
	"github.com/ctc-parts/catalog-importer/internal/common"
)

// Outcome is the per-record result of one import attempt.
type Outcome struct {
	Record     catalog.Record
	Status     constants.OutcomeStatus
	HTTPStatus int
	PartID     string
	Err        string
}

// Summary is the run-level tally.
type Summary struct {
	Attempted int
	Succeeded int
	Verified  int
	Failed    int
	// Errors holds the first MaxErrors failure messages, to keep logs
	// bounded on large catalogs.
	Errors []string
}

// Importer drives the sequential create/verify loop against the parts API.
// Records are processed strictly in input order, one awaited call at a
// time; a per-record failure never aborts the batch.
type Importer struct {
	Client *Client
	Cfg    common.ImportConfig
	Logger *slog.Logger
}

func New(client *Client, cfg common.ImportConfig, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.BatchPause <= 0 {
		cfg.BatchPause = 100 * time.Millisecond
	}
	if cfg.MaxErrors <= 0 {
		cfg.MaxErrors = 20
	}
	return &Importer{Client: client, Cfg: cfg, Logger: logger}
}

// Run imports records and returns per-record outcomes plus the run summary.
// Preflight failure marks every record failed without attempting a single
// create, and the returned error wraps ErrBackendUnreachable.
func (im *Importer) Run(ctx context.Context, records []catalog.Record) ([]Outcome, Summary, error) {
	start := time.Now()
	summary := Summary{Attempted: len(records)}

	if err := im.Client.Health(ctx); err != nil {
		im.Logger.Error("import.preflight_failed", "error", err)
		outcomes := make([]Outcome, len(records))
		for i, rec := range records {
			outcomes[i] = Outcome{
				Record: rec,
				Status: constants.OutcomeError,
				Err:    "backend unreachable",
			}
		}
		summary.Failed = len(records)
		summary.addError("preflight: " + err.Error())
		return outcomes, summary, err
	}

	outcomes := make([]Outcome, 0, len(records))
	for idx, rec := range records {
		outcome := im.importOne(ctx, idx, rec)
		outcomes = append(outcomes, outcome)

		switch outcome.Status {
		case constants.OutcomeVerified:
			summary.Verified++
			summary.Succeeded++
		case constants.OutcomeSuccess:
			summary.Succeeded++
		case constants.OutcomeError:
			summary.Failed++
			if len(summary.Errors) < im.Cfg.MaxErrors {
				summary.addError(fmt.Sprintf("Item %d (%s): %s", idx+1, rec.Key(), outcome.Err))
			}
		}

		if (idx+1)%100 == 0 {
			im.Logger.Info("import.progress",
				"done", idx+1, "total", len(records),
				"succeeded", summary.Succeeded, "failed", summary.Failed,
			)
		}

		// Fixed pause between batches so the backend is not hammered.
		if (idx+1)%im.Cfg.BatchSize == 0 {
			if err := pause(ctx, im.Cfg.BatchPause); err != nil {
				return outcomes, summary, err
			}
		}
	}

	im.Logger.Info("import.done",
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"verified", summary.Verified,
		"failed", summary.Failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return outcomes, summary, nil
}

func (im *Importer) importOne(ctx context.Context, idx int, rec catalog.Record) Outcome {
	outcome := Outcome{Record: rec}

	payload := catalog.BuildPayload(rec)
	if err := catalog.ValidatePayload(payload); err != nil {
		outcome.Status = constants.OutcomeError
		outcome.Err = truncate("payload invalid: "+err.Error(), 100)
		im.Logger.Warn("import.payload_invalid", "item", idx+1, "key", rec.Key(), "error", err)
		return outcome
	}

	part, status, raw, err := im.Client.CreatePart(ctx, payload)
	outcome.HTTPStatus = status
	if err != nil {
		outcome.Status = constants.OutcomeError
		outcome.Err = truncate(fmt.Sprintf("%d - %s", status, string(raw)), 100)
		return outcome
	}

	if part != nil {
		outcome.PartID = part.ID.String()
	}
	outcome.Status = constants.OutcomeSuccess

	if !im.Cfg.Verify || outcome.PartID == "" {
		return outcome
	}

	fetched, err := im.Client.GetPart(ctx, outcome.PartID)
	if err != nil {
		// Created but not verifiable; verification is advisory.
		im.Logger.Warn("import.verify_fetch_failed", "part_id", outcome.PartID, "error", err)
		return outcome
	}
	if verifyMatch(payload, fetched) {
		outcome.Status = constants.OutcomeVerified
	} else {
		outcome.Status = constants.OutcomeError
		outcome.Err = "Verification failed - data mismatch"
	}
	return outcome
}

// verifyMatch compares the identity fields of the created resource against
// what was sent, byte for byte.
func verifyMatch(payload map[string]any, fetched *Part) bool {
	return fetched.MasterPartNo == payloadString(payload, "master_part_no") &&
		fetched.PartNo == payloadString(payload, "part_no") &&
		fetched.Description == payloadString(payload, "description")
}

func payloadString(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// DeleteAll removes every part currently in the backend, with the same
// pacing as imports. Used by the reimport flow before re-loading a catalog.
func (im *Importer) DeleteAll(ctx context.Context) (deleted, failed int, err error) {
	parts, total, err := im.Client.ListParts(ctx, 10000)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: list parts: %v", common.ErrBackendUnreachable, err)
	}
	im.Logger.Info("reimport.delete_start", "existing", total)

	for i, p := range parts {
		if p.ID == "" {
			continue
		}
		if derr := im.Client.DeletePart(ctx, p.ID.String()); derr != nil {
			failed++
			if failed <= 5 {
				im.Logger.Warn("reimport.delete_failed", "part_id", p.ID.String(), "error", derr)
			}
		} else {
			deleted++
		}
		if (i+1)%im.Cfg.BatchSize == 0 {
			if perr := pause(ctx, im.Cfg.BatchPause); perr != nil {
				return deleted, failed, perr
			}
		}
	}

	_, remaining, lerr := im.Client.ListParts(ctx, 1)
	if lerr == nil && remaining > 0 {
		im.Logger.Warn("reimport.residual_parts", "remaining", remaining)
	}
	im.Logger.Info("reimport.delete_done", "deleted", deleted, "failed", failed)
	return deleted, failed, nil
}

// pause sleeps for d unless the context ends first.
func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Summary) addError(msg string) {
	s.Errors = append(s.Errors, msg)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
