//go:build js && wasm

// The wasm entry point. It wires the real browser window to the auth
// flow, runs the mount-time bootstrap and exposes the user-triggered
// operations to the page. Rendering stays on the JavaScript side, which
// listens for "assistant:phase" events.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog/log"

	"github.com/geeom/personal-assistant-web/app"
	"github.com/geeom/personal-assistant-web/auth"
	"github.com/geeom/personal-assistant-web/browser"
	"github.com/geeom/personal-assistant-web/internal/config"
	"github.com/geeom/personal-assistant-web/internal/utils"
	"github.com/geeom/personal-assistant-web/messages"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	if cfg.GetEnv() == config.EnvDev {
		displayAppname(cfg.GetAppName())
	}

	window := browser.NewJSWindow()
	exchanger := auth.NewExchangeClient(cfg.GetBackendURL())
	application := app.New(cfg, window, exchanger, app.WithPhaseListener(publishPhase))
	msgClient := messages.NewClient(cfg.GetBackendURL())

	exportOperations(application, msgClient)

	go application.Bootstrap(context.Background())

	// The page owns the process lifetime; keep the exported callbacks
	// alive until the tab goes away.
	keepAlive := make(chan struct{})
	<-keepAlive
}

// publishPhase hands each transition to the rendering layer as a DOM
// event carrying the phase name.
func publishPhase(phase app.Phase) {
	event := js.Global().Get("CustomEvent").New("assistant:phase", map[string]any{
		"detail": phase.String(),
	})
	js.Global().Call("dispatchEvent", event)
}

func exportOperations(application *app.App, msgClient *messages.Client) {
	js.Global().Set("assistantSignIn", js.FuncOf(func(js.Value, []js.Value) any {
		application.SignIn()
		return nil
	}))
	js.Global().Set("assistantSignOut", js.FuncOf(func(js.Value, []js.Value) any {
		application.SignOut()
		return nil
	}))
	js.Global().Set("assistantFailReason", js.FuncOf(func(js.Value, []js.Value) any {
		return application.FailReason()
	}))
	js.Global().Set("assistantListMessages", js.FuncOf(func(js.Value, []js.Value) any {
		go listMessages(application, msgClient)
		return nil
	}))
	js.Global().Set("assistantPostMessage", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) != 1 {
			return nil
		}
		content := args[0].String()
		go postMessage(application, msgClient, content)
		return nil
	}))
}

func listMessages(application *app.App, msgClient *messages.Client) {
	session := application.Session()
	if !session.IsAuthenticated() {
		return
	}
	msgs, err := msgClient.List(context.Background(), session.Token)
	if err != nil {
		log.Error().Err(err).Msg("could not fetch messages")
		return
	}
	publishMessages(msgs)
}

func postMessage(application *app.App, msgClient *messages.Client, content string) {
	session := application.Session()
	if !session.IsAuthenticated() || session.User == nil || content == "" {
		return
	}
	msg := messages.Message{
		Content: content,
		Author:  session.User.Name,
		UserID:  utils.Ptr(session.User.ID),
	}
	if _, err := msgClient.Post(context.Background(), session.Token, msg); err != nil {
		log.Error().Err(err).Msg("could not send message")
		return
	}
	listMessages(application, msgClient)
}

func publishMessages(msgs []messages.Message) {
	payload, err := json.Marshal(msgs)
	if err != nil {
		log.Error().Err(err).Msg("could not encode messages")
		return
	}
	event := js.Global().Get("CustomEvent").New("assistant:messages", map[string]any{
		"detail": string(payload),
	})
	js.Global().Call("dispatchEvent", event)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
