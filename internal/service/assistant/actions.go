package assistant

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"

	"github.com/disintegration/imaging"

	"github.com/sandevgo/lifeos/internal/core"
	"github.com/sandevgo/lifeos/pkg/log"
)

const thumbnailMaxSide = 320

// dispatch runs the action for one resolved intent. It fills res and meta in
// place and reports the log type plus the camera frame, when one was taken,
// so the caller can attach a thumbnail to the activity log.
func (a *Assistant) dispatch(ctx context.Context, sessionID string, it core.Intent, transcription string, res *core.InteractionResult, meta core.Metadata) (core.LogType, []byte, error) {
	logger := log.FromCtx(ctx)

	switch it.Kind {
	case core.IntentStartNote:
		a.deps.State.SetAwaitingNote(sessionID)
		res.FinalResponseText = replyAskNote
		return core.LogTypeCommand, nil, nil

	case core.IntentRememberFace:
		frame, err := a.deps.Camera.Capture(ctx)
		if err != nil {
			return "", nil, err
		}
		res.VisionRequired = true

		name, _ := it.Payload["name"].(string)
		face := a.deps.Faces.Enroll(ctx, frame, name)
		if face == nil {
			res.FinalResponseText = replyEnrollFailed
		} else {
			res.FinalResponseText = fmt.Sprintf(replyRemembered, face.Name)
			meta[metaKeyPerson] = face.Name
		}
		return core.LogTypeImage, frame, nil

	case core.IntentRecognizeFace:
		frame, err := a.deps.Camera.Capture(ctx)
		if err != nil {
			return "", nil, err
		}
		res.VisionRequired = true

		name, err := a.deps.Faces.Recognize(ctx, frame)
		if err != nil {
			return "", nil, err
		}
		if name == "" {
			res.FinalResponseText = replyNotRecognized
			meta[metaKeyPerson] = "unknown"
		} else {
			res.FinalResponseText = fmt.Sprintf(replyRecognized, name)
			meta[metaKeyPerson] = name
		}
		return core.LogTypeImage, frame, nil

	case core.IntentGeneralVision:
		frame, err := a.deps.Camera.Capture(ctx)
		if err != nil {
			return "", nil, err
		}
		res.VisionRequired = true

		answer, err := a.deps.Vision.Analyze(ctx, frame, transcription)
		if err != nil {
			return "", nil, err
		}
		res.VisionResult = answer
		res.FinalResponseText = answer
		meta[metaKeyAnalysis] = answer

		if a.deps.VisionChatReply {
			if reply, err := a.deps.TextGen.Generate(ctx, transcription); err != nil {
				logger.Warn().Err(err).Msg("secondary chat reply failed")
			} else {
				res.TextReply = reply
			}
		}
		return core.LogTypeImage, frame, nil

	default:
		// general_text plus anything the classifier invented.
		reply, err := a.deps.TextGen.Generate(ctx, transcription)
		if err != nil {
			return "", nil, err
		}
		res.TextReply = reply
		res.FinalResponseText = reply
		return core.LogTypeVoice, nil, nil
	}
}

// encodeFrame shrinks a captured frame to a thumbnail and packs it into a
// jpeg data URI small enough to live inside the log metadata column. Frames
// that fail to decode are embedded as-is.
func (a *Assistant) encodeFrame(ctx context.Context, frame []byte) string {
	payload := frame

	img, err := imaging.Decode(bytes.NewReader(frame))
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("frame thumbnail decode failed, embedding raw frame")
	} else {
		thumb := imaging.Fit(img, thumbnailMaxSide, thumbnailMaxSide, imaging.Lanczos)
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err == nil {
			payload = buf.Bytes()
		}
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)
}
