package main

import (
	"fmt"
	"strings"

	"digital-twin-be/internal/bootstrap"
	"digital-twin-be/internal/config"
	"digital-twin-be/internal/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var askOpts struct {
	mood      string
	sessionID string
	stream    bool
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one chat message through the full pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askOpts.mood, "mood", "m", "professional", "Mood: professional or genz")
	askCmd.Flags().StringVarP(&askOpts.sessionID, "session", "s", "", "Session id to continue")
	askCmd.Flags().BoolVar(&askOpts.stream, "stream", true, "Stream the reply token by token")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	container, err := bootstrap.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	req := &dto.SendChatRequest{
		Message:   strings.Join(args, " "),
		Mood:      askOpts.mood,
		SessionId: askOpts.sessionID,
	}
	out := cmd.OutOrStdout()

	if !askOpts.stream {
		res, err := container.ChatService.SendChat(ctx, req)
		if err != nil {
			return err
		}
		printStage(cmd, res.SessionId, res.Stage, res.ErrorType)
		fmt.Fprintln(out, res.Content)
		return nil
	}

	return container.ChatService.StreamChat(ctx, req, func(frame dto.ChatStreamFrame) error {
		switch frame.Type {
		case dto.FrameStart:
			color.New(color.FgHiBlack).Fprintf(out, "session %s\n", frame.SessionId)
		case dto.FrameToken:
			fmt.Fprint(out, frame.Content)
		case dto.FrameDone:
			fmt.Fprintln(out)
			printStage(cmd, frame.SessionId, frame.Stage, frame.ErrorCode)
		case dto.FrameError:
			color.New(color.FgRed).Fprintf(out, "\n[%s] %s\n", frame.ErrorCode, frame.Content)
		}
		return nil
	})
}

func printStage(cmd *cobra.Command, sessionID, stage, errorCode string) {
	c := color.New(color.FgGreen)
	if errorCode != "" {
		c = color.New(color.FgYellow)
	}
	line := "stage=" + stage
	if errorCode != "" {
		line += " error=" + errorCode
	}
	c.Fprintf(cmd.OutOrStdout(), "%s (session %s)\n", line, sessionID)
}
