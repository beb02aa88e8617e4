package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lottery-server/internal/mocks"
	"github.com/dtroode/lottery-server/internal/model"
	"github.com/dtroode/lottery-server/internal/testutil"
)

func TestLottery_SubmitDraw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     any
		svcErr   error
		callSvc  bool
		wantCode int
	}{
		{name: "stored", body: map[string][]int{"numbers": {3, 12, 27, 40, 55, 59}}, callSvc: true, wantCode: http.StatusCreated},
		{name: "rejected numbers", body: map[string][]int{"numbers": {1, 1, 2, 3, 4, 5}}, callSvc: true, svcErr: model.NewValidationError("numbers", "must be distinct"), wantCode: http.StatusBadRequest},
		{name: "no active round", body: map[string][]int{"numbers": {3, 12, 27, 40, 55, 59}}, callSvc: true, svcErr: model.ErrNoActiveRound, wantCode: http.StatusNotFound},
		{name: "malformed body", body: map[string]string{"numbers": "1 2 3"}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewLotteryService(t)
			if tt.callSvc {
				svc.On("SubmitDraw", mock.Anything, participant, mock.AnythingOfType("[]int")).
					Return(model.DrawView{ID: 5, Numbers: "3 12 27 40 55 59", Round: 1}, tt.svcErr).Once()
			}

			h := NewLottery(svc, testutil.MakeNoopLogger())
			r := newEngine(&participant)
			r.POST("/lottery/draws", h.SubmitDraw)

			w := doJSON(t, r, http.MethodPost, "/lottery/draws", tt.body)
			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusCreated {
				assert.Equal(t, "3 12 27 40 55 59", decode[model.DrawView](t, w).Numbers)
			}
		})
	}
}

func TestLottery_ListAndClear(t *testing.T) {
	t.Parallel()

	svc := mocks.NewLotteryService(t)
	svc.On("PlayableDraws", mock.Anything, participant).Return(nil, nil).Once()
	svc.On("PlayedDraws", mock.Anything, participant).Return([]model.DrawView{{ID: 1, Played: true, MatchesMaster: true}}, nil).Once()
	svc.On("ClearPlayed", mock.Anything, participant).Return(1, nil).Once()

	h := NewLottery(svc, testutil.MakeNoopLogger())
	r := newEngine(&participant)
	r.GET("/lottery/draws", h.PlayableDraws)
	r.GET("/lottery/results", h.PlayedDraws)
	r.DELETE("/lottery/results", h.ClearPlayed)

	w := doJSON(t, r, http.MethodGet, "/lottery/draws", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"draws":[]}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/lottery/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	played := decode[drawsResponse](t, w)
	require.Len(t, played.Draws, 1)
	assert.True(t, played.Draws[0].MatchesMaster)

	w = doJSON(t, r, http.MethodDelete, "/lottery/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":1}`, w.Body.String())
}

func TestLottery_AdminRoundOperations(t *testing.T) {
	t.Parallel()

	openedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	svc := mocks.NewLotteryService(t)
	svc.On("OpenNewRound", mock.Anything, admin).Return(model.Round{Number: 2, Discarded: 1, OpenedAt: openedAt}, nil).Once()
	svc.On("RevealMasterDraw", mock.Anything, admin).Return(model.DrawView{Numbers: "1 2 3 4 5 6", Round: 2}, nil).Once()
	svc.On("CloseRound", mock.Anything, admin).Return(model.CloseResult{
		Round:   2,
		Master:  "1 2 3 4 5 6",
		Settled: 3,
		Winners: []model.Winner{{Round: 2, Numbers: "1 2 3 4 5 6", OwnerID: 7, Email: "w@example.com"}},
	}, nil).Once()

	h := NewLottery(svc, testutil.MakeNoopLogger())
	r := newEngine(&admin)
	r.POST("/admin/rounds", h.OpenRound)
	r.GET("/admin/rounds/current", h.RevealMaster)
	r.POST("/admin/rounds/current/close", h.CloseRound)

	w := doJSON(t, r, http.MethodPost, "/admin/rounds", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, model.Round{Number: 2, Discarded: 1, OpenedAt: openedAt}, decode[model.Round](t, w))

	w = doJSON(t, r, http.MethodGet, "/admin/rounds/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1 2 3 4 5 6", decode[model.DrawView](t, w).Numbers)

	w = doJSON(t, r, http.MethodPost, "/admin/rounds/current/close", nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[model.CloseResult](t, w)
	assert.Equal(t, 3, result.Settled)
	require.Len(t, result.Winners, 1)
	assert.Equal(t, "w@example.com", result.Winners[0].Email)
}

func TestLottery_CloseRound_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "forbidden", err: model.ErrForbidden, wantCode: http.StatusForbidden},
		{name: "no entries", err: model.ErrNoEntries, wantCode: http.StatusConflict},
		{name: "master undecryptable", err: fmt.Errorf("failed to decrypt master draw: %w", model.ErrDecryption), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewLotteryService(t)
			svc.On("CloseRound", mock.Anything, participant).Return(model.CloseResult{}, tt.err).Once()

			h := NewLottery(svc, testutil.MakeNoopLogger())
			r := newEngine(&participant)
			r.POST("/admin/rounds/current/close", h.CloseRound)

			assert.Equal(t, tt.wantCode, doJSON(t, r, http.MethodPost, "/admin/rounds/current/close", nil).Code)
		})
	}
}

func TestLottery_CloseRound_VoidedEntriesKeepWinners(t *testing.T) {
	t.Parallel()

	svc := mocks.NewLotteryService(t)
	svc.On("CloseRound", mock.Anything, admin).Return(model.CloseResult{
		Round:   4,
		Master:  "1 2 3 4 5 6",
		Settled: 2,
		Winners: []model.Winner{{Round: 4, Numbers: "1 2 3 4 5 6", OwnerID: 7, Email: "w@example.com"}},
		Voided:  []int64{31},
	}, fmt.Errorf("1 entries voided: %w", model.ErrDecryption)).Once()

	h := NewLottery(svc, testutil.MakeNoopLogger())
	r := newEngine(&admin)
	r.POST("/admin/rounds/current/close", h.CloseRound)

	w := doJSON(t, r, http.MethodPost, "/admin/rounds/current/close", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[closeRoundResponse](t, w)
	assert.Equal(t, 2, body.Settled)
	assert.Equal(t, []int64{31}, body.Voided)
	require.Len(t, body.Winners, 1)
	assert.Equal(t, "w@example.com", body.Winners[0].Email)
	assert.NotEmpty(t, body.Error)
}
