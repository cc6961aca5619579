package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"arcade_hub/internal/game"
	"arcade_hub/internal/logger"
	"arcade_hub/internal/service"
	"arcade_hub/internal/ws"

	"github.com/gorilla/websocket"
)

// play_smoke plays one Binary Blast round against a running server over the
// WebSocket stream, answering every prompt correctly until the clock runs out.
func main() {
	addr := flag.String("addr", "localhost:8080", "server host:port")
	token := flag.String("token", os.Getenv("TOKEN"), "bearer token (see cmd/devtoken)")
	flag.Parse()

	logger.Init("info", false)
	if *token == "" {
		logger.Fatal("token required")
	}

	gameID, err := findGame(*addr, *token, game.TitleFor(game.KindBinaryBlast))
	if err != nil {
		logger.Fatal("find game", "error", err)
	}

	var view service.RoundView
	if err := call(http.MethodPost, "http://"+*addr+"/api/v1/play", *token, map[string]string{"game_id": gameID}, &view); err != nil {
		logger.Fatal("start round", "error", err)
	}
	logger.Info("round started", "play_id", view.ID, "remaining", view.State.Remaining)

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws/play/" + view.ID.String(), RawQuery: "token=" + url.QueryEscape(*token)}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		logger.Fatal("dial", "error", err)
	}
	defer conn.Close()

	var answered string
	for {
		conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		var msg struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			logger.Fatal("read", "error", err)
		}

		switch msg.Type {
		case ws.MsgState:
			var st game.State
			if err := json.Unmarshal(msg.Payload, &st); err != nil {
				logger.Fatal("decode state", "error", err)
			}
			key := st.Round.Prompt + "/" + strconv.Itoa(st.Score)
			if st.Status != game.StatusActive || key == answered {
				continue
			}
			answered = key
			n, err := strconv.Atoi(st.Round.Prompt)
			if err != nil {
				logger.Fatal("unexpected prompt", "prompt", st.Round.Prompt)
			}
			answer := ws.ActionPayload{Type: ws.MsgAction, Action: game.ActionSubmit, Value: game.ToBinary(n)}
			if err := conn.WriteJSON(answer); err != nil {
				logger.Fatal("write", "error", err)
			}
			logger.Info("answered", "prompt", n, "answer", answer.Value, "score", st.Score, "remaining", st.Remaining)
		case ws.MsgError:
			logger.Warn("server rejected action", "payload", string(msg.Payload))
		case ws.MsgOutcome:
			fmt.Printf("outcome: %s\n", msg.Payload)
			return
		}
	}
}

func findGame(addr, token, title string) (string, error) {
	var resp struct {
		Games []service.GameCard `json:"games"`
	}
	if err := call(http.MethodGet, "http://"+addr+"/api/v1/games?q="+url.QueryEscape(title), token, nil, &resp); err != nil {
		return "", err
	}
	for _, g := range resp.Games {
		if g.Title == title {
			return g.ID.String(), nil
		}
	}
	return "", fmt.Errorf("game %q not in catalog", title)
}

func call(method, url, token string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", method, url, res.Status)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
