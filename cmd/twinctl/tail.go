package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"digital-twin-be/internal/config"
	"digital-twin-be/pkg/events"
	pktNats "digital-twin-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tailOpts struct {
	subject string
	durable string
}

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow chat events forwarded to NATS JetStream",
	RunE:  runTail,
}

func init() {
	tailCmd.Flags().StringVar(&tailOpts.subject, "subject", "events.>", "Subject filter")
	tailCmd.Flags().StringVar(&tailOpts.durable, "durable", "", "Durable consumer name (empty follows new events only)")
}

func runTail(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.Events.NatsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	out := cmd.OutOrStdout()
	color.New(color.FgHiBlack).Fprintf(out, "following %s on %s\n", tailOpts.subject, cfg.Events.NatsURL)

	return sub.Subscribe(cmd.Context(), tailOpts.subject, tailOpts.durable, func(ctx context.Context, event events.Event) error {
		return printEvent(out, event)
	})
}

var eventColors = map[string]color.Attribute{
	events.TypeChatReplied:  color.FgGreen,
	events.TypeChatRejected: color.FgYellow,
	events.TypeChatFallback: color.FgCyan,
	events.TypeChatFailed:   color.FgRed,
	events.TypeSessionReset: color.FgMagenta,
}

func printEvent(w io.Writer, event events.Event) error {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}
	attr, ok := eventColors[event.EventType()]
	if !ok {
		attr = color.FgWhite
	}
	color.New(attr).Fprintf(w, "%s %-14s", event.Timestamp().Format("15:04:05"), event.EventType())
	fmt.Fprintf(w, " %s\n", data)
	return nil
}
