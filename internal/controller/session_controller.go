package controller

import (
	"context"

	"ai-langcoach-be/internal/constant"
	"ai-langcoach-be/internal/dto"
	"ai-langcoach-be/internal/pkg/apperror"
	"ai-langcoach-be/internal/pkg/serverutils"
	"ai-langcoach-be/internal/service"
	"ai-langcoach-be/pkg/openai"

	"github.com/gofiber/fiber/v2"
)

// TranslatorClient is the slice of the OpenAI client the controller needs.
type TranslatorClient interface {
	Complete(ctx context.Context, language, prompt string) (*openai.CompletionResult, error)
	Synthesize(ctx context.Context, input string) ([]byte, error)
}

type ISessionController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Submit(ctx *fiber.Ctx) error
	GetSessions(ctx *fiber.Ctx) error
	SaveRecording(ctx *fiber.Ctx) error
}

type sessionController struct {
	service    service.ISessionService
	translator TranslatorClient
}

func NewSessionController(service service.ISessionService, translator TranslatorClient) ISessionController {
	return &sessionController{
		service:    service,
		translator: translator,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	r.Use(authMiddleware)
	r.Post("/submit", c.Submit)
	r.Get("/sessions", c.GetSessions)
	r.Post("/saveRecording/session/:sessionId", c.SaveRecording)
}

func (c *sessionController) Submit(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.SubmitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "invalid request body", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// Validation gates the provider calls: an unsupported language never
	// reaches OpenAI or storage.
	languageName := constant.LanguageNames[req.Language]

	completion, err := c.translator.Complete(ctx.Context(), languageName, req.Text)
	if err != nil {
		return apperror.Wrap(apperror.KindUpstream, "completion request failed", err)
	}

	audio, err := c.translator.Synthesize(ctx.Context(), completion.Translation)
	if err != nil {
		return apperror.Wrap(apperror.KindUpstream, "speech synthesis failed", err)
	}

	res, err := c.service.Submit(ctx.Context(), userId, req.Text, req.Language, completion, audio)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit prompt", res))
}

func (c *sessionController) GetSessions(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.service.ListSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *sessionController) SaveRecording(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	sessionId := ctx.Params("sessionId")

	var req dto.SaveRecordingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "invalid request body", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.AttachRecording(ctx.Context(), sessionId, userId, req.AudioData); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success save recording", nil))
}
