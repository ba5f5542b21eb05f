package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonbook/models"
	"salonbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterClient_GetSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedule/1/2024-05-17", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.Schedule{
			MasterID: 1, MasterName: "Anna", Date: "2024-05-17",
			AvailableTimes: []string{"11:00", "13:00"},
		})
	}))
	defer srv.Close()

	s, err := NewMasterClient(srv.URL, time.Second).GetSchedule(context.Background(), 1, "2024-05-17")
	require.NoError(t, err)
	assert.Equal(t, "Anna", s.MasterName)
	assert.True(t, s.IsAvailable("13:00"))
}

func TestMasterClient_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   utils.ErrorKind
	}{
		{http.StatusNotFound, utils.KindNotFound},
		{http.StatusConflict, utils.KindConflict},
		{http.StatusBadRequest, utils.KindInvalidInput},
		{http.StatusInternalServerError, utils.KindUpstreamUnavailable},
		{http.StatusServiceUnavailable, utils.KindUpstreamUnavailable},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"success":false,"error":"nope"}`))
		}))

		err := NewMasterClient(srv.URL, time.Second).ReserveSlot(context.Background(), models.SlotClaim{ClaimantID: 1, MasterID: 1, Date: "2024-05-17", Time: "12:00"})
		srv.Close()

		require.Error(t, err)
		assert.Equal(t, tc.kind, utils.KindOf(err), tc.status)
		assert.Equal(t, "nope", utils.MessageOf(err))
	}
}

func TestMasterClient_ReserveSlotSendsClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/book_slot/2/2024-05-17/12:00", r.URL.Path)
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 7, body["client_id"])
		_, _ = w.Write([]byte(`{"success":true,"booking_id":3}`))
	}))
	defer srv.Close()

	err := NewMasterClient(srv.URL, time.Second).ReserveSlot(context.Background(), models.SlotClaim{ClaimantID: 7, MasterID: 2, Date: "2024-05-17", Time: "12:00"})
	assert.NoError(t, err)
}

func TestMasterClient_ReleaseSlot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/free_slot/1/2024-05-17/12:00", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"released":false}`))
	}))
	defer srv.Close()

	released, err := NewMasterClient(srv.URL, time.Second).ReleaseSlot(context.Background(), 1, "2024-05-17", "12:00")
	require.NoError(t, err)
	assert.False(t, released)
}

func TestMasterClient_ReleaseClaim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/free_slot/1/2024-05-17/12:00", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("client_id"))
		_, _ = w.Write([]byte(`{"success":true,"released":true}`))
	}))
	defer srv.Close()

	released, err := NewMasterClient(srv.URL, time.Second).ReleaseClaim(context.Background(), models.SlotClaim{ClaimantID: 7, MasterID: 1, Date: "2024-05-17", Time: "12:00"})
	require.NoError(t, err)
	assert.True(t, released)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewMasterClient(srv.URL, 20*time.Millisecond).GetMaster(context.Background(), 1)
	assert.Equal(t, utils.KindUpstreamUnavailable, utils.KindOf(err))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHistoryClient(url, time.Second).RecordSession(context.Background(), models.SessionRequest{UserID: 1})
	assert.Equal(t, utils.KindUpstreamUnavailable, utils.KindOf(err))
}

func TestConfirmationClient_Exists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/booking_lookup", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		assert.Equal(t, "12:00", r.URL.Query().Get("time"))
		_, _ = w.Write([]byte(`{"exists":true,"booking_id":11}`))
	}))
	defer srv.Close()

	ok, err := NewConfirmationClient(srv.URL, time.Second).Exists(context.Background(), models.SlotClaim{ClaimantID: 7, MasterID: 1, Date: "2024-05-17", Time: "12:00"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmationClient_Confirm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.ConfirmRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 7, req.UserID)
		_, _ = w.Write([]byte(`{"success":true,"booking_id":5,"booking":{"id":5,"user_id":7,"user":"Ivan","master_id":1,"master":"Anna","date":"2024-05-17","time":"12:00"}}`))
	}))
	defer srv.Close()

	res, err := NewConfirmationClient(srv.URL, time.Second).Confirm(context.Background(), models.ConfirmRequest{UserID: 7, MasterID: 1, Date: "2024-05-17", Time: "12:00"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.BookingID)
	assert.Equal(t, "Ivan", res.Booking.UserName)
}

func TestUserClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"user not found"}`))
	}))
	defer srv.Close()

	_, err := NewUserClient(srv.URL, time.Second).GetUser(context.Background(), 42)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestRelayClient_Notify(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 7, body["user_id"])
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewRelayClient(srv.URL, time.Second)
	require.NoError(t, c.Notify(context.Background(), 7, models.EventBookingCreated, map[string]any{"booking_id": 3}))
	require.NoError(t, c.Notify(context.Background(), 7, "reminder", map[string]any{"message": "see you"}))

	assert.Equal(t, []string{"/booking_created", "/send"}, paths)
}
