package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/code-reviewer/internal/apierror"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/wire"
)

var (
	local   bool
	raw     bool
	timeout time.Duration
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	errorColor = color.New(color.FgRed)
	dimColor   = color.New(color.FgHiBlack)
)

var headerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("51")).
	Bold(true).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("33")).
	Padding(0, 2)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Review a source file with the AI code reviewer",
	Long: `Review a source file with the AI code reviewer.

The file is posted to the service's /ai/get-review endpoint and the returned
markdown is rendered in the terminal. Without a file, or with "-", the code is
read from stdin. With --local the review runs in-process using the .env of the
current directory.

Examples:
  review-cli review main.go
  cat handler.js | review-cli review
  review-cli review --server http://reviewer:3000 app.py
  review-cli review --local main.go`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().BoolVar(&local, "local", false, "Run the review in-process instead of calling the service")
	reviewCmd.Flags().BoolVar(&raw, "raw", false, "Print the review without markdown rendering")
	reviewCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum time to wait for the review")
	rootCmd.AddCommand(reviewCmd)
}

// serverError is a non-200 answer from the service.
type serverError struct {
	Status  int
	Message string
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	name, code, err := readSource(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("Code Review: "+name))

	var text string
	if local {
		dimColor.Fprintln(out, "running review in-process")
		text, err = reviewLocal(ctx, code)
	} else {
		base := viper.GetString("SERVER_URL")
		dimColor.Fprintf(out, "sending %d bytes to %s\n", len(code), base)
		text, err = requestReview(ctx, &http.Client{}, base, code)
	}
	if err != nil {
		errorColor.Fprintf(cmd.ErrOrStderr(), "✗ %s\n", errorMessage(err))
		return err
	}

	if raw {
		fmt.Fprintln(out, text)
		return nil
	}

	rendered, err := renderMarkdown(text)
	if err != nil {
		fmt.Fprintln(out, text)
		return nil
	}
	fmt.Fprint(out, rendered)
	titleColor.Fprintln(out, "✓ review complete")
	return nil
}

// readSource returns a display name and the code to review.
func readSource(args []string, stdin io.Reader) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return "stdin", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}

// requestReview posts code to the service and returns the review text.
func requestReview(ctx context.Context, client *http.Client, baseURL, code string) (string, error) {
	body, err := json.Marshal(core.ReviewRequest{Code: code})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := strings.TrimRight(baseURL, "/") + "/ai/get-review"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apierror.Response
		if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = strings.TrimSpace(string(data))
		}
		return "", &serverError{Status: resp.StatusCode, Message: apiErr.Error}
	}
	return string(data), nil
}

func reviewLocal(ctx context.Context, code string) (string, error) {
	reviewer, cleanup, err := wire.InitializeReviewer(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to initialize reviewer: %w", err)
	}
	defer cleanup()

	code = core.TrimCode(code)
	if code == "" {
		return "", errors.New(apierror.MsgInvalidCode)
	}
	return reviewer.Review(ctx, code)
}

func renderMarkdown(text string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}

func errorMessage(err error) string {
	var se *serverError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
