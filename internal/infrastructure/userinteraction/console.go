package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"report-agent/internal/application/port/output"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*Console)(nil)

const defaultTask = "Find the top 5 AI related headlines from a reputable tech news site"

type Console struct {
	reader *bufio.Reader
}

func NewConsole() *Console {
	return &Console{
		reader: bufio.NewReader(os.Stdin),
	}
}

// AskTask prompts for a task on stdin; a blank line falls back to the
// default example task.
func (c *Console) AskTask(ctx context.Context) (string, error) {
	bold := color.New(color.Bold)
	bold.Println("Web Report Agent")
	bold.Println("----------------")
	fmt.Print("Enter your web task (e.g. 'Find the top 5 AI related headlines'): ")

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read task: %w", err)
	}

	task := strings.TrimSpace(line)
	if task == "" {
		task = defaultTask
		fmt.Printf("Using default task: %s\n", task)
	}

	return task, nil
}

func (c *Console) ShowStart(task string) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Printf("\nRunning task: %s\n", task)
}

func (c *Console) ShowSuccess(reportPath string) {
	green := color.New(color.FgGreen, color.Bold)
	green.Printf("\nReport written to %s\n", reportPath)
}

func (c *Console) ShowFailure(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Printf("\nTask failed: %v\n", err)
}
