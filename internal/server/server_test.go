package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathblitz/internal/leaderboard"
	"github.com/abhisek/mathblitz/internal/store"
)

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestServer(t *testing.T, password string) (*Server, *httptest.Server) {
	t.Helper()
	hash, err := HashResetPassword(password)
	require.NoError(t, err)

	srv := New(store.NewMemory(leaderboard.MaxEntries), Options{
		MaxScore:          100000,
		ResetPasswordHash: hash,
		Logger:            zerolog.Nop(),
		Now:               func() time.Time { return fixedNow },
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func post(t *testing.T, url, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func getBoard(t *testing.T, base string) []leaderboard.Entry {
	t.Helper()
	resp, err := http.Get(base + leaderboard.PathBoard)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var entries []leaderboard.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	return entries
}

func TestGetBoard_EmptyIsArray(t *testing.T) {
	_, ts := newTestServer(t, "")

	resp, err := http.Get(ts.URL + leaderboard.PathBoard)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(t, `[]`, string(raw))
}

func TestSubmit_RecordsNormalizedEntry(t *testing.T) {
	_, ts := newTestServer(t, "")

	code, body := post(t, ts.URL+leaderboard.PathBoard, `{"name":"  ada lovelace!! ","score":42,"level":3}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])

	board := getBoard(t, ts.URL)
	require.Len(t, board, 1)
	assert.Equal(t, "ADA LOVELACE", board[0].Name)
	assert.Equal(t, 42, board[0].Score)
	assert.Equal(t, 3, board[0].Level)
	assert.True(t, board[0].Date.Equal(fixedNow))
}

func TestSubmit_DefaultsNameAndLevel(t *testing.T) {
	_, ts := newTestServer(t, "")

	code, _ := post(t, ts.URL+leaderboard.PathBoard, `{"name":"***","score":7}`)
	require.Equal(t, http.StatusOK, code)

	board := getBoard(t, ts.URL)
	require.Len(t, board, 1)
	assert.Equal(t, leaderboard.DefaultName, board[0].Name)
	assert.Equal(t, 1, board[0].Level)
}

func TestSubmit_Rejections(t *testing.T) {
	_, ts := newTestServer(t, "")

	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", `score=5`, "Invalid data format"},
		{"score as string", `{"name":"A","score":"5"}`, "Invalid data format"},
		{"fractional score", `{"name":"A","score":5.5}`, "Invalid data format"},
		{"array body", `[1,2]`, "Invalid data format"},
		{"negative", `{"name":"A","score":-1}`, "Score out of range"},
		{"too large", `{"name":"A","score":100001}`, "Score out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := post(t, ts.URL+leaderboard.PathBoard, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.want, body["error"])
		})
	}

	assert.Empty(t, getBoard(t, ts.URL))
}

func TestSubmit_BoundaryScoresAccepted(t *testing.T) {
	_, ts := newTestServer(t, "")

	code, _ := post(t, ts.URL+leaderboard.PathBoard, `{"name":"ZERO","score":0}`)
	assert.Equal(t, http.StatusOK, code)
	code, _ = post(t, ts.URL+leaderboard.PathBoard, `{"name":"MAX","score":100000}`)
	assert.Equal(t, http.StatusOK, code)

	board := getBoard(t, ts.URL)
	require.Len(t, board, 2)
	assert.Equal(t, "MAX", board[0].Name)
}

func TestSubmit_KeepsBestPerName(t *testing.T) {
	_, ts := newTestServer(t, "")

	post(t, ts.URL+leaderboard.PathBoard, `{"name":"BOB","score":30}`)
	post(t, ts.URL+leaderboard.PathBoard, `{"name":"bob","score":12}`)

	board := getBoard(t, ts.URL)
	require.Len(t, board, 1)
	assert.Equal(t, 30, board[0].Score)
}

func TestSubmit_CapsBoard(t *testing.T) {
	_, ts := newTestServer(t, "")

	for i := 0; i < leaderboard.MaxEntries+3; i++ {
		body := `{"name":"P` + string(rune('A'+i)) + `","score":` + jsonInt(i*10) + `}`
		code, _ := post(t, ts.URL+leaderboard.PathBoard, body)
		require.Equal(t, http.StatusOK, code)
	}

	board := getBoard(t, ts.URL)
	require.Len(t, board, leaderboard.MaxEntries)
	assert.Equal(t, (leaderboard.MaxEntries+2)*10, board[0].Score)
	for i := 1; i < len(board); i++ {
		assert.GreaterOrEqual(t, board[i-1].Score, board[i].Score)
	}
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestReset_Disabled(t *testing.T) {
	_, ts := newTestServer(t, "")

	code, body := post(t, ts.URL+leaderboard.PathReset, `{"password":"anything"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Reset is disabled", body["error"])
}

func TestReset_PasswordCheck(t *testing.T) {
	_, ts := newTestServer(t, "s3cret")
	post(t, ts.URL+leaderboard.PathBoard, `{"name":"CAT","score":9}`)

	code, body := post(t, ts.URL+leaderboard.PathReset, `{"password":"nope"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Incorrect password", body["error"])
	assert.Len(t, getBoard(t, ts.URL), 1)

	code, body = post(t, ts.URL+leaderboard.PathReset, `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid data format", body["error"])

	code, body = post(t, ts.URL+leaderboard.PathReset, `{"password":"s3cret"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Empty(t, getBoard(t, ts.URL))
}

func TestCORSPreflight(t *testing.T) {
	_, ts := newTestServer(t, "")

	req, err := http.NewRequest(http.MethodOptions, ts.URL+leaderboard.PathBoard, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, "")

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLive_PushesBoardChanges(t *testing.T) {
	srv, ts := newTestServer(t, "pw")

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + leaderboard.PathLive
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readLive(t, conn)
	assert.Empty(t, first.Payload)

	require.Eventually(t, func() bool { return srv.Hub().Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	post(t, ts.URL+leaderboard.PathBoard, `{"name":"DEE","score":15,"level":2}`)
	update := readLive(t, conn)
	require.Len(t, update.Payload, 1)
	assert.Equal(t, "DEE", update.Payload[0].Name)

	post(t, ts.URL+leaderboard.PathReset, `{"password":"pw"}`)
	cleared := readLive(t, conn)
	assert.Empty(t, cleared.Payload)
}

func TestLive_UnsubscribesOnClose(t *testing.T) {
	srv, ts := newTestServer(t, "")

	u := "ws" + strings.TrimPrefix(ts.URL, "http") + leaderboard.PathLive
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	readLive(t, conn)
	require.Eventually(t, func() bool { return srv.Hub().Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return srv.Hub().Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func readLive(t *testing.T, conn *websocket.Conn) leaderboard.LiveMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg leaderboard.LiveMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, leaderboard.LiveMessageBoard, msg.Type)
	return msg
}

func TestClientRoundTrip(t *testing.T) {
	_, ts := newTestServer(t, "letmein")
	client := leaderboard.NewClient(ts.URL)
	ctx := context.Background()

	board, err := client.Submit(ctx, leaderboard.Submission{Name: "eve", Score: 21, Level: 3, SessionID: "s-1"})
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "EVE", board[0].Name)

	_, err = client.Submit(ctx, leaderboard.Submission{Name: "eve", Score: 999999})
	var se *leaderboard.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "Score out of range", se.Message)

	res, err := client.Reset(ctx, "wrong")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "Incorrect password", res.Error)

	res, err = client.Reset(ctx, "letmein")
	require.NoError(t, err)
	assert.True(t, res.OK)

	entries, err := client.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClientWatch(t *testing.T) {
	_, ts := newTestServer(t, "")
	client := leaderboard.NewClient(ts.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := client.Watch(ctx)
	require.NoError(t, err)

	select {
	case b := <-updates:
		assert.Empty(t, b)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial board")
	}

	_, err = client.Submit(ctx, leaderboard.Submission{Name: "FAY", Score: 5, Level: 1})
	require.NoError(t, err)

	select {
	case b := <-updates:
		require.Len(t, b, 1)
		assert.Equal(t, "FAY", b[0].Name)
	case <-time.After(5 * time.Second):
		t.Fatal("no update")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, ok := <-updates
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

// blockingBoard holds Top open until release is closed.
type blockingBoard struct {
	store.Board
	entered chan struct{}
	release chan struct{}
}

func (b *blockingBoard) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	select {
	case b.entered <- struct{}{}:
	default:
	}
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return b.Board.Top(ctx, limit)
}

func TestGetBoard_SharedReadSurvivesCallerCancel(t *testing.T) {
	mem := store.NewMemory(leaderboard.MaxEntries)
	_, _, err := mem.Submit(context.Background(), leaderboard.Entry{Name: "ADA", Score: 7, Level: 2, Date: fixedNow})
	require.NoError(t, err)

	board := &blockingBoard{Board: mem, entered: make(chan struct{}, 1), release: make(chan struct{})}
	srv := New(board, Options{Logger: zerolog.Nop()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+leaderboard.PathBoard, nil)
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
		}
		first <- err
	}()

	select {
	case <-board.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first read never reached the board")
	}
	cancel()
	<-first

	type result struct {
		resp *http.Response
		err  error
	}
	second := make(chan result, 1)
	go func() {
		resp, err := http.Get(ts.URL + leaderboard.PathBoard)
		second <- result{resp, err}
	}()

	time.Sleep(50 * time.Millisecond)
	close(board.release)

	var res result
	select {
	case res = <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("second read did not complete")
	}
	require.NoError(t, res.err)
	defer res.resp.Body.Close()
	require.Equal(t, http.StatusOK, res.resp.StatusCode)

	var entries []leaderboard.Entry
	require.NoError(t, json.NewDecoder(res.resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "ADA", entries[0].Name)
}

func TestNew_DefaultsMaxScore(t *testing.T) {
	srv := New(store.NewMemory(leaderboard.MaxEntries), Options{Logger: zerolog.Nop()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code, body := post(t, ts.URL+leaderboard.PathBoard, `{"name":"ada","score":`+jsonInt(DefaultMaxScore)+`,"level":5}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["ok"])

	code, body = post(t, ts.URL+leaderboard.PathBoard, `{"name":"bob","score":`+jsonInt(DefaultMaxScore+1)+`,"level":5}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Score out of range", body["error"])
}
