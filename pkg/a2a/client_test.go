package a2a

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	rpcerrors "github.com/theapemachine/a2a-bridge/pkg/errors"
)

func TestFetchAgentCard(t *testing.T) {
	Convey("Given an agent publishing a card", t, func() {
		var gotPath, gotMethod string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath, gotMethod = r.URL.Path, r.Method
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"Echo","capabilities":["chat"]}`))
		}))
		defer srv.Close()

		client := NewClient()
		defer client.Close()

		Convey("When the card is fetched", func() {
			card, err := client.FetchAgentCard(t.Context(), srv.URL)

			Convey("Then it should GET the well-known path and parse the card", func() {
				So(err, ShouldBeNil)
				So(gotMethod, ShouldEqual, http.MethodGet)
				So(gotPath, ShouldEqual, AgentCardPath)
				So(card.Name, ShouldEqual, "Echo")
				So(card.Capabilities, ShouldResemble, []string{"chat"})
				So(card.AuthType, ShouldEqual, DefaultAuthType)
			})
		})

		Convey("When the endpoint has a trailing slash", func() {
			_, err := client.FetchAgentCard(t.Context(), srv.URL+"/")

			Convey("Then the path should not be doubled", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, AgentCardPath)
			})
		})
	})

	Convey("Given an agent that fails", t, func() {
		client := NewClient()
		defer client.Close()

		Convey("When the card endpoint returns 500", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			_, err := client.FetchAgentCard(t.Context(), srv.URL)

			Convey("Then a StatusError should be returned", func() {
				var statusErr *StatusError
				So(errors.As(err, &statusErr), ShouldBeTrue)
				So(statusErr.StatusCode, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When the card is not valid JSON", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("invalid json"))
			}))
			defer srv.Close()

			_, err := client.FetchAgentCard(t.Context(), srv.URL)

			Convey("Then a DecodingError should be returned", func() {
				So(err, ShouldHaveSameTypeAs, &DecodingError{})
			})
		})

		Convey("When the agent is unreachable", func() {
			srv := httptest.NewServer(http.NotFoundHandler())
			url := srv.URL
			srv.Close()

			_, err := client.FetchAgentCard(t.Context(), url)

			Convey("Then a ConnectionError should be returned", func() {
				So(err, ShouldHaveSameTypeAs, &ConnectionError{})
			})
		})
	})

	Convey("Given an agent slower than the client timeout", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(500 * time.Millisecond):
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()

		client := NewClient(WithTimeout(50 * time.Millisecond))
		defer client.Close()

		_, err := client.FetchAgentCard(t.Context(), srv.URL)

		Convey("Then a TimeoutError should be returned", func() {
			So(err, ShouldHaveSameTypeAs, &TimeoutError{})
			So(client.Timeout(), ShouldEqual, 50*time.Millisecond)
		})
	})
}

func TestSendMessage(t *testing.T) {
	Convey("Given an agent answering message/send", t, func() {
		var (
			gotPath        string
			gotContentType string
			gotBody        map[string]any
		)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotContentType = r.Header.Get("Content-Type")
			json.NewDecoder(r.Body).Decode(&gotBody)
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"text":"hi back"}}`))
		}))
		defer srv.Close()

		client := NewClient()
		defer client.Close()

		Convey("When a text message is sent", func() {
			resp, err := client.SendMessage(t.Context(), srv.URL, NewTextMessage(RoleUser, "hi"))

			Convey("Then the request should be a JSON-RPC message/send call", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, MessagePath)
				So(strings.HasPrefix(gotContentType, "application/json"), ShouldBeTrue)
				So(gotBody["jsonrpc"], ShouldEqual, "2.0")
				So(gotBody["id"], ShouldEqual, float64(1))
				So(gotBody["method"], ShouldEqual, "message/send")
				So(gotBody["params"], ShouldResemble, map[string]any{
					"message": map[string]any{
						"role": "user",
						"parts": []any{
							map[string]any{"kind": "text", "text": "hi"},
						},
					},
				})
			})

			Convey("Then the raw result should be returned", func() {
				So(err, ShouldBeNil)
				So(resp.HasResult(), ShouldBeTrue)
				So(string(resp.Result), ShouldEqual, `{"text":"hi back"}`)
				So(resp.Error, ShouldBeNil)
			})
		})
	})

	Convey("Given an agent rejecting messages", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient()
		defer client.Close()

		resp, err := client.SendMessage(t.Context(), srv.URL, NewTextMessage(RoleUser, "hi"))

		Convey("Then a StatusError should be returned", func() {
			So(resp, ShouldBeNil)
			So(err, ShouldHaveSameTypeAs, &StatusError{})
			So(err.Error(), ShouldEqual, "A2A call failed: 502")
		})
	})

	Convey("Given an agent answering with a JSON-RPC error", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"Method not found"}}`))
		}))
		defer srv.Close()

		client := NewClient()
		defer client.Close()

		resp, err := client.SendMessage(t.Context(), srv.URL, NewTextMessage(RoleUser, "hi"))

		Convey("Then the error member should be decoded, not raised", func() {
			So(err, ShouldBeNil)
			So(resp.HasResult(), ShouldBeFalse)
			So(resp.Error.Code, ShouldEqual, -32601)
			So(errors.Is(resp.Error, rpcerrors.ErrMethodNotFound), ShouldBeTrue)
		})
	})
}
