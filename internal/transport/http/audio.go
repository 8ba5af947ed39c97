package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/internal/service/conversation"
	"github.com/sandevgo/lifeos/pkg/log"
)

// sessionHeader lets each device keep its own note dictation flow. Absent
// header means the shared default session.
const sessionHeader = "X-Session-ID"

type voiceCommandResponse struct {
	core.InteractionResult
	AudioURL string `json:"audioUrl,omitempty"`
}

type voiceCommandError struct {
	Error             string `json:"error"`
	FinalResponseText string `json:"finalResponseText,omitempty"`
	AudioURL          string `json:"audioUrl,omitempty"`
}

func (s *Server) handleVoiceCommand(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, voiceCommandError{Error: "audio file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, voiceCommandError{Error: "failed to read audio file"})
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, voiceCommandError{Error: "failed to read audio file"})
	}

	sessionID := c.Request().Header.Get(sessionHeader)
	if sessionID == "" {
		sessionID = conversation.DefaultSession
	}

	res, err := s.assistant.Process(ctx, sessionID, audio, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, core.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, voiceCommandError{Error: err.Error()})
		}

		log.FromCtx(ctx).Error().Err(err).Msg("voice command failed")

		body := voiceCommandError{Error: err.Error()}
		if res != nil {
			body.FinalResponseText = res.FinalResponseText
			body.AudioURL = s.publicURL(res.AudioFilePath)
		}
		return c.JSON(http.StatusInternalServerError, body)
	}

	return c.JSON(http.StatusOK, voiceCommandResponse{
		InteractionResult: *res,
		AudioURL:          s.publicURL(res.AudioFilePath),
	})
}
