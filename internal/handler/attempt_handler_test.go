package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/nighthawkad92/proto-vocab-ahmedabad-sub001/internal/models"
)

type attemptPayload struct {
	ID             uint       `json:"id"`
	StudentID      uint       `json:"student_id"`
	LessonID       uint       `json:"lesson_id"`
	CompletedAt    *time.Time `json:"completed_at"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
}

func TestAttemptLifecycleOverHTTP(t *testing.T) {
	app, db := setupApp(t, "file:attempt_handler_lifecycle?mode=memory&cache=shared")

	student := models.Student{Name: "Ravi", Email: "ravi@example.com"}
	require.NoError(t, db.Create(&student).Error)
	lesson := models.Lesson{Title: "Colors"}
	require.NoError(t, db.Create(&lesson).Error)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/students/1/attempts", `{"lesson_id":1}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, envelope.Success)

	var attempt attemptPayload
	require.NoError(t, json.Unmarshal(envelope.Data, &attempt))
	require.Equal(t, uint(1), attempt.StudentID)
	require.Equal(t, uint(1), attempt.LessonID)
	require.Nil(t, attempt.CompletedAt)

	for _, correct := range []bool{true, true, false} {
		body := `{"correct":true}`
		if !correct {
			body = `{"correct":false}`
		}
		resp, envelope = doJSON(t, app, http.MethodPost, "/api/v1/attempts/1/responses", body)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &attempt))
	require.Equal(t, 2, attempt.CorrectCount)
	require.Equal(t, 1, attempt.IncorrectCount)

	resp, envelope = doJSON(t, app, http.MethodPost, "/api/v1/attempts/1/complete", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var completion struct {
		Attempt   attemptPayload `json:"attempt"`
		NewBadges []struct {
			ID string `json:"id"`
		} `json:"new_badges"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &completion))
	require.NotNil(t, completion.Attempt.CompletedAt)
	require.Len(t, completion.NewBadges, 1)
	require.Equal(t, "first-steps", completion.NewBadges[0].ID)

	// Writing to a finished attempt is refused.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/attempts/1/responses", `{"correct":true}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Completing again changes nothing and awards nothing.
	resp, envelope = doJSON(t, app, http.MethodPost, "/api/v1/attempts/1/complete", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(envelope.Data, &completion))
	require.Empty(t, completion.NewBadges)

	resp, envelope = doJSON(t, app, http.MethodGet, "/api/v1/students/1/progress", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var progress struct {
		TotalAttempts     int     `json:"total_attempts"`
		CompletedAttempts int     `json:"completed_attempts"`
		Accuracy          float64 `json:"accuracy"`
		CurrentStreak     int     `json:"current_streak"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &progress))
	require.Equal(t, 1, progress.TotalAttempts)
	require.Equal(t, 1, progress.CompletedAttempts)
	require.InDelta(t, 2.0/3.0, progress.Accuracy, 1e-9)
	require.Equal(t, 1, progress.CurrentStreak)
}

func TestAttemptStartErrorsOverHTTP(t *testing.T) {
	app, db := setupApp(t, "file:attempt_handler_errors?mode=memory&cache=shared")

	student := models.Student{Name: "Mira", Email: "mira@example.com"}
	require.NoError(t, db.Create(&student).Error)

	resp, envelope := doJSON(t, app, http.MethodPost, "/api/v1/students/1/attempts", `{}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.False(t, envelope.Success)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/students/1/attempts", `{"lesson_id":77}`)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/students/42/attempts", `{"lesson_id":1}`)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/attempts/99/complete", "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
