// Package generation runs the entitlement-gated generation pipeline.
package generation

import (
	"context"
	"errors"

	"github.com/creatorkit/server/internal/domain/entitlement"
	"github.com/creatorkit/server/internal/domain/usage"
	"github.com/creatorkit/server/internal/model"
	"github.com/creatorkit/server/internal/port/inbound"
	"github.com/creatorkit/server/internal/port/outbound"
	"go.uber.org/zap"
)

// CreationAppender persists generation results.
type CreationAppender interface {
	Append(ctx context.Context, creation *model.Creation) (int64, error)
}

// UsageCommitter records an accepted free-tier generation.
type UsageCommitter interface {
	Commit(ctx context.Context, userID string, nextUsageCount int) (int, error)
}

// Domain wires the gate, the variants and the stores into one pipeline.
type Domain struct {
	registry  *Registry
	gate      entitlement.Gate
	creations CreationAppender
	usage     UsageCommitter
	tx        outbound.TransactorPort
	logger    *zap.Logger
}

// NewGenerationDomain creates a new generation domain service.
func NewGenerationDomain(
	registry *Registry,
	gate entitlement.Gate,
	creations CreationAppender,
	usage UsageCommitter,
	tx outbound.TransactorPort,
	logger *zap.Logger,
) *Domain {
	return &Domain{
		registry:  registry,
		gate:      gate,
		creations: creations,
		usage:     usage,
		tx:        tx,
		logger:    logger,
	}
}

// Compile-time interface check
var _ inbound.GenerationDomain = (*Domain)(nil)

// Generate runs one generation. The caller's quota is consulted before any
// input is inspected. Validation runs before any provider call, and nothing
// is persisted or charged unless every provider call succeeded. The creation
// insert and the usage commit share a transaction: either both apply or
// neither does.
func (d *Domain) Generate(ctx context.Context, caller *model.Caller, kind model.GenerationKind, in *model.GenerationInput) (*model.GenerationResult, error) {
	if caller == nil || caller.UserID == "" {
		return nil, Unauthenticated(errors.New("no caller"))
	}
	if in == nil {
		in = &model.GenerationInput{}
	}

	variant, ok := d.registry.Get(kind)
	if !ok {
		return nil, invalid(ErrUnknownKind)
	}

	log := d.logger.With(zap.String("kind", kind.String()), zap.String("user_id", caller.UserID))

	decision := d.gate.Decide(caller.Plan, caller.FreeUsageCount, variant.RequiresPremium())
	if !decision.Allowed {
		log.Info("generation denied", zap.String("reason", string(decision.Reason)))
		return nil, denied(decision.Reason)
	}

	if err := variant.Validate(in); err != nil {
		return nil, invalid(err)
	}
	req, err := variant.BuildRequest(caller, in)
	if err != nil {
		return nil, invalid(err)
	}

	res, err := variant.Invoke(ctx, req)
	if err != nil {
		if f, ok := AsFailure(err); ok {
			return nil, f
		}
		log.Warn("provider call failed", zap.Error(err))
		return nil, providerFailed(err)
	}
	out, err := variant.Normalize(req, res)
	if err != nil {
		log.Warn("provider result rejected", zap.Error(err))
		return nil, providerFailed(err)
	}

	creation := &model.Creation{
		UserID:  caller.UserID,
		Prompt:  out.Prompt,
		Content: out.Content,
		Type:    out.Type,
		Publish: out.Publish,
	}
	usageCount := caller.FreeUsageCount

	err = d.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := d.creations.Append(txCtx, creation); err != nil {
			return err
		}
		if decision.NextUsageCount == nil {
			return nil
		}
		stored, err := d.usage.Commit(txCtx, caller.UserID, *decision.NextUsageCount)
		if err != nil {
			return err
		}
		usageCount = stored
		return nil
	})
	if errors.Is(err, usage.ErrQuotaRaceLost) {
		log.Info("generation denied at commit", zap.String("reason", string(entitlement.DenyQuotaExceeded)))
		return nil, denied(entitlement.DenyQuotaExceeded)
	}
	if err != nil {
		log.Error("persistence failure after provider success",
			zap.String("failure", string(KindPersistence)),
			zap.Error(err),
		)
		return nil, persistenceFailed(err)
	}

	return &model.GenerationResult{
		Kind:       kind,
		Content:    out.Content,
		Message:    out.Message,
		CreationID: creation.ID,
		UsageCount: usageCount,
	}, nil
}
