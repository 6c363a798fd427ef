package controller

import (
	"context"
	"iter"

	"cascade-softdelete/internal/dto"
	"cascade-softdelete/internal/entity"
	"cascade-softdelete/internal/pkg/apperror"
	"cascade-softdelete/internal/pkg/serverutils"
	"cascade-softdelete/internal/service"
	"cascade-softdelete/pkg/softdelete/status"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultEntriesLimit = 100

type ISoftDeleteController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	SetSoftDelete(ctx *fiber.Ctx) error
	ResetSoftDelete(ctx *fiber.Ctx) error
	GetSoftDeletedEntries(ctx *fiber.Ctx) error
	SetCascadeSoftDelete(ctx *fiber.Ctx) error
	ResetCascadeSoftDelete(ctx *fiber.Ctx) error
	CheckCascadeSoftDelete(ctx *fiber.Ctx) error
	CheckResetCascadeSoftDelete(ctx *fiber.Ctx) error
	GetCascadeSoftDeletedEntries(ctx *fiber.Ctx) error
}

type softDeleteController struct {
	provider service.ISoftDeleteServiceProvider
}

func NewSoftDeleteController(provider service.ISoftDeleteServiceProvider) ISoftDeleteController {
	return &softDeleteController{provider: provider}
}

func (c *softDeleteController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	single := r.Group("/soft-delete/v1", auth)
	single.Get(":type", c.GetSoftDeletedEntries)
	single.Post(":type/:key", c.SetSoftDelete)
	single.Delete(":type/:key", c.ResetSoftDelete)

	cascade := r.Group("/cascade-soft-delete/v1", auth)
	cascade.Get(":type", c.GetCascadeSoftDeletedEntries)
	cascade.Post(":type/:key", c.SetCascadeSoftDelete)
	cascade.Delete(":type/:key", c.ResetCascadeSoftDelete)
	cascade.Get(":type/:key/check", c.CheckCascadeSoftDelete)
	cascade.Get(":type/:key/check-reset", c.CheckResetCascadeSoftDelete)
}

type keyOperation func(ctx context.Context, entityType string, key uuid.UUID) (*status.Status, error)

type listOperation func(ctx context.Context, entityType string) (iter.Seq2[*entity.Record, error], error)

func (c *softDeleteController) SetSoftDelete(ctx *fiber.Ctx) error {
	return c.byKey(ctx, "Success soft delete", func(userFilter interface{}) keyOperation {
		return c.provider.Single(userFilter).SetSoftDeleteByKey
	})
}

func (c *softDeleteController) ResetSoftDelete(ctx *fiber.Ctx) error {
	return c.byKey(ctx, "Success reset soft delete", func(userFilter interface{}) keyOperation {
		return c.provider.Single(userFilter).ResetSoftDeleteByKey
	})
}

func (c *softDeleteController) GetSoftDeletedEntries(ctx *fiber.Ctx) error {
	return c.list(ctx, "Success get soft deleted entries", func(userFilter interface{}) listOperation {
		return c.provider.Single(userFilter).GetSoftDeletedEntries
	})
}

func (c *softDeleteController) SetCascadeSoftDelete(ctx *fiber.Ctx) error {
	return c.byKey(ctx, "Success cascade soft delete", func(userFilter interface{}) keyOperation {
		return c.provider.Cascade(userFilter).SetCascadeSoftDeleteByKey
	})
}

func (c *softDeleteController) ResetCascadeSoftDelete(ctx *fiber.Ctx) error {
	return c.byKey(ctx, "Success reset cascade soft delete", func(userFilter interface{}) keyOperation {
		return c.provider.Cascade(userFilter).ResetCascadeSoftDeleteByKey
	})
}

func (c *softDeleteController) CheckCascadeSoftDelete(ctx *fiber.Ctx) error {
	return c.byKey(ctx, "Entries a cascade soft delete would change", func(userFilter interface{}) keyOperation {
		return c.provider.Cascade(userFilter).CheckCascadeSoftDeleteByKey
	})
}

func (c *softDeleteController) CheckResetCascadeSoftDelete(ctx *fiber.Ctx) error {
	return c.byKey(ctx, "Entries a cascade reset would restore", func(userFilter interface{}) keyOperation {
		return c.provider.Cascade(userFilter).CheckResetCascadeSoftDeleteByKey
	})
}

func (c *softDeleteController) GetCascadeSoftDeletedEntries(ctx *fiber.Ctx) error {
	return c.list(ctx, "Success get cascade soft deleted entries", func(userFilter interface{}) listOperation {
		return c.provider.Cascade(userFilter).GetSoftDeletedEntries
	})
}

func (c *softDeleteController) byKey(ctx *fiber.Ctx, message string, op func(userFilter interface{}) keyOperation) error {
	req := dto.SoftDeleteKeyRequest{
		EntityType: ctx.Params("type"),
		Key:        ctx.Params("key"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	key, err := uuid.Parse(req.Key)
	if err != nil {
		return apperror.NewValidation("key must be a uuid")
	}

	userFilter, err := userFilterOf(ctx)
	if err != nil {
		return err
	}

	st, err := op(userFilter)(ctx.UserContext(), req.EntityType, key)
	if err != nil {
		return err
	}
	if !st.IsValid() {
		return statusError(st)
	}

	return ctx.JSON(serverutils.SuccessResponse(message, dto.SoftDeleteStatusResponse{
		EntityType: req.EntityType,
		Key:        key,
		Result:     st.Result(),
	}))
}

func (c *softDeleteController) list(ctx *fiber.Ctx, message string, op func(userFilter interface{}) listOperation) error {
	req := dto.SoftDeletedEntriesRequest{
		EntityType: ctx.Params("type"),
		Limit:      ctx.QueryInt("limit", defaultEntriesLimit),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	userFilter, err := userFilterOf(ctx)
	if err != nil {
		return err
	}

	seq, err := op(userFilter)(ctx.UserContext(), req.EntityType)
	if err != nil {
		return err
	}

	entries := make([]*dto.SoftDeletedEntryResponse, 0)
	for rec, err := range seq {
		if err != nil {
			return err
		}
		entries = append(entries, &dto.SoftDeletedEntryResponse{
			EntityType:      rec.Type,
			Key:             rec.Key,
			SoftDeleted:     rec.SoftDeleted,
			SoftDeleteLevel: rec.SoftDeleteLevel,
		})
		if len(entries) == req.Limit {
			break
		}
	}

	return ctx.JSON(serverutils.SuccessResponse(message, dto.GetSoftDeletedEntriesResponse{
		EntityType: req.EntityType,
		Entries:    entries,
	}))
}

// userFilterOf scopes every request to the rows of the authenticated user.
func userFilterOf(ctx *fiber.Ctx) (interface{}, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil, apperror.NewUnauthorized("Token carries no valid user id")
	}
	return userId, nil
}

// statusError reports an invalid status with the code of its first problem
// and every message.
func statusError(st *status.Status) error {
	problems := st.Problems()
	first := problems[0]
	return &apperror.AppError{
		Code:       first.Code,
		Message:    st.GetAllErrors(),
		Details:    first.Details,
		HTTPStatus: first.HTTPStatus,
		Err:        st.Err(),
	}
}
