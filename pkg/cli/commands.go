package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

var tapCommand = &cli.Command{
	Name:      "tap",
	Usage:     "Resolve a description to an element and tap it",
	ArgsUsage: "<description>",
	Description: `Resolve a natural-language element description and tap the match.
Exits non-zero when no strategy finds the element.

Examples:
  screenpilot tap "the subscribe button"
  screenpilot tap "the second video"
  screenpilot tap "red car"`,
	Action: runTap,
}

var textCommand = &cli.Command{
	Name:   "text",
	Usage:  "List the visible text on the current screen",
	Action: runText,
}

var dumpCommand = &cli.Command{
	Name:  "dump",
	Usage: "Print a structured description of the current screen",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "vision",
			Usage: "Describe the screen with the vision model instead of the accessibility tree",
		},
	},
	Action: runDump,
}

var watchCommand = &cli.Command{
	Name:  "watch",
	Usage: "Drive the device from descriptions read from stdin until EOF",
	Description: `Start the background screenshot loop and process one line at a time.
Most lines are element descriptions resolved to taps; a few words are
device commands: back, home, wake, scroll up, scroll down,
"type <text>", and "ask <question>". Blank lines are skipped.

Example:
  printf 'tap settings\nback\n' | screenpilot watch`,
	Action: runWatch,
}

func runTap(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("usage: screenpilot tap <description>")
	}

	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	target, err := s.resolver.ResolveAndTap(query)
	if err != nil {
		return err
	}

	fmt.Printf("tapped %q at %s (%s tier)\n", target.Label, target.Point, target.Tier)
	return nil
}

func runText(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	texts, err := s.resolver.ListVisibleText()
	if err != nil {
		return err
	}
	for _, t := range texts {
		fmt.Println(t)
	}
	return nil
}

func runDump(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	var description string
	if c.Bool("vision") {
		description, err = s.vision.DescribeScreen()
	} else {
		description, err = s.tree.DescribeScreen()
	}
	if err != nil {
		return err
	}

	fmt.Println(description)
	return nil
}

func runWatch(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	defer s.close()

	s.vision.StartBackgroundCapture()
	defer s.vision.StopBackgroundCapture()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if handled, err := dispatchDeviceCommand(s, line); handled {
			if err != nil {
				fmt.Printf("error: %v\n", err)
			}
			continue
		}
		target, err := s.resolver.ResolveAndTap(line)
		if err != nil {
			fmt.Printf("miss: %v\n", err)
			continue
		}
		fmt.Printf("tapped %q at %s (%s tier)\n", target.Label, target.Point, target.Tier)
	}
	return scanner.Err()
}

// dispatchDeviceCommand handles the non-resolution watch commands. The first
// return is false when the line is an element description instead.
func dispatchDeviceCommand(s *session, line string) (bool, error) {
	switch line {
	case "back":
		return true, s.device.Back()
	case "home":
		return true, s.device.Home()
	case "wake":
		return true, s.device.Wake()
	case "scroll up", "scroll down":
		return true, s.device.ScrollOnce(strings.TrimPrefix(line, "scroll "))
	}
	if text, ok := strings.CutPrefix(line, "type "); ok {
		return true, s.device.TypeText(text)
	}
	if question, ok := strings.CutPrefix(line, "ask "); ok {
		answer, err := s.vision.AnswerQuestion(question)
		if err != nil {
			return true, err
		}
		fmt.Println(answer)
		return true, nil
	}
	return false, nil
}
