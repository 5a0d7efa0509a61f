package test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgznml/WorkoutTracker/internal/plan"
	"github.com/lgznml/WorkoutTracker/internal/trainlog"
)

func (s *IntegrationTestSuite) TestWorkoutFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.redisDataCleanup(ctx))
	s.ensureTestUser(ctx, t)
	token := s.doLogin(ctx, t)

	t.Run("program config and week number", func(t *testing.T) {
		resp := s.doRequest(ctx, t, "POST", "/program/config", token, []byte(`{"startDate":"2025-11-03"}`))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		resp = s.doRequest(ctx, t, "GET", "/program/week?date=2025-11-12", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `{"date":"2025-11-12","weekday":"Mercoledì","week":2}`, readBody(t, resp))
	})

	t.Run("plan round trip", func(t *testing.T) {
		template := plan.New()
		require.NoError(t, template.AddExercise("Lunedì", plan.Exercise{
			Name:         "Squat",
			RecoveryTime: "2min",
			Targets: []plan.WeekTarget{
				{Sets: "4", Reps: "8"}, {Sets: "4", Reps: "8"}, {Sets: "4", Reps: "8"},
				{Sets: "5", Reps: "6"}, {Sets: "5", Reps: "6"}, {Sets: "5", Reps: "6"},
			},
		}))
		templateJson, err := json.Marshal(template)
		require.NoError(t, err)

		resp := s.doRequest(ctx, t, "PUT", "/plan", token, templateJson)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		resp = s.doRequest(ctx, t, "GET", "/plan", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var fetched plan.Plan
		require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &fetched))
		require.Len(t, fetched["Lunedì"], 1)
		assert.Equal(t, "Squat", fetched["Lunedì"][0].Name)
		require.Len(t, fetched["Lunedì"][0].Targets, 6)
		assert.Equal(t, "5", fetched["Lunedì"][0].Targets[5].Sets)
	})

	t.Run("incremental session save", func(t *testing.T) {
		saveReq := trainlog.IncrementalSaveRequest{
			Date: "2025-11-12",
			Entry: trainlog.Entry{
				ExerciseName:  "Squat",
				TargetSets:    "4",
				TargetReps:    "8",
				WeightUsed:    "80kg",
				SetsPerformed: "4",
				RepsPerformed: "8",
				GoalMet:       true,
			},
		}
		saveReqJson, err := json.Marshal(saveReq)
		require.NoError(t, err)

		resp := s.doRequest(ctx, t, "POST", "/trainlog/sessions/exercise", token, saveReqJson)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var session trainlog.Session
		require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &session))
		assert.Equal(t, "2025-11-12", session.Date)
		assert.Equal(t, "Mercoledì", session.Weekday)
		assert.Equal(t, 2, session.ProgramWeek)
		require.Len(t, session.Exercises, 1)

		// second exercise merges into the same session
		saveReq.Entry.ExerciseName = "Bench Press"
		saveReq.Entry.WeightUsed = "60kg"
		saveReqJson, err = json.Marshal(saveReq)
		require.NoError(t, err)

		resp = s.doRequest(ctx, t, "POST", "/trainlog/sessions/exercise", token, saveReqJson)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &session))
		require.Len(t, session.Exercises, 2)

		resp = s.doRequest(ctx, t, "GET", "/trainlog/sessions/2025-11-12", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &session))
		require.Len(t, session.Exercises, 2)
	})

	t.Run("last weight and progression", func(t *testing.T) {
		resp := s.doRequest(ctx, t, "GET", "/trainlog/lastweight/Squat", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `{"weight":"80kg"}`, readBody(t, resp))

		resp = s.doRequest(ctx, t, "GET", "/trainlog/progression/Squat", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var progression trainlog.Progression
		require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &progression))
		require.Len(t, progression.Points, 1)
		assert.Equal(t, 80.0, progression.CurrentWeight)
	})

	t.Run("body metrics", func(t *testing.T) {
		resp := s.doRequest(ctx, t, "POST", "/bodymetrics", token,
			[]byte(`{"date":"2025-11-12","weight":"72.5Kg","calories":"2200"}`))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())

		resp = s.doRequest(ctx, t, "GET", "/bodymetrics/series", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, `"value":72.5`)
		assert.Contains(t, body, `"value":2200`)
	})

	t.Run("export document", func(t *testing.T) {
		resp := s.doRequest(ctx, t, "GET", "/export", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, `"template"`)
		assert.Contains(t, body, `"history"`)
		assert.Contains(t, body, "2025-11-12")
	})
}
