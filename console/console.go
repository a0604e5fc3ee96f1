// Package console is the text menu around the slogan generator: a fixed demo,
// an interactive run reading from the user, and exit.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"marketing_slogan_generator/generator"
)

// Demo inputs.
const (
	DemoProduct  = "EcoBottle Pro"
	DemoAudience = "environmentally conscious millennials"
	DemoTone     = "friendly"
)

const previewLen = 300

var rule = strings.Repeat("=", 70)

// Console reads choices from In and writes everything to Out.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	agent *generator.Agent
	// first read error other than io.EOF
	err error
}

func New(in io.Reader, out io.Writer, agent *generator.Agent) *Console {
	return &Console{in: bufio.NewReader(in), out: out, agent: agent}
}

// Menu loops until the user picks exit or input ends.
func (c *Console) Menu(ctx context.Context) error {
	for {
		c.println()
		c.banner("MARKETING SLOGAN GENERATOR - MAIN MENU")
		c.println()
		c.println("1. Run Demo (EcoBottle Pro example)")
		c.println("2. Interactive Mode (Enter your own product)")
		c.println("3. Exit")
		c.println()

		choice, ok := c.ask("Select an option (1-3): ")
		if !ok {
			return c.err
		}
		switch choice {
		case "1":
			c.println()
			c.Demo(ctx)
		case "2":
			c.println()
			if err := c.Interactive(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return c.err
				}
				return err
			}
		case "3":
			c.println()
			c.println(rule)
			c.println("Thank you for using Marketing Slogan Generator!")
			c.println(rule)
			return nil
		default:
			c.println()
			c.println("Invalid choice. Please select 1, 2, or 3.")
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Demo runs all three styles against the EcoBottle Pro inputs.
func (c *Console) Demo(ctx context.Context) {
	c.banner("MARKETING SLOGAN GENERATOR - DEMONSTRATION")
	c.println()
	c.println("INPUT VARIABLES:")
	c.printf("  Product: %s\n", DemoProduct)
	c.printf("  Target Audience: %s\n", DemoAudience)
	c.printf("  Tone: %s\n", DemoTone)
	c.println()

	c.banner("DEMONSTRATION 1: PROFESSIONAL APPROACH")
	professional := generator.Professional(DemoProduct, DemoAudience, DemoTone)
	c.println()
	c.println("Generated Prompt (first 300 characters):")
	c.printf("%s...\n\n", preview(professional, previewLen))
	c.println("Sending to completion service...")
	c.println()
	c.println("API Response:")
	c.println(c.agent.Generate(ctx, professional))
	c.println()

	c.banner("DEMONSTRATION 2: CREATIVE APPROACH")
	c.println()
	c.println(c.agent.Generate(ctx, generator.Creative(DemoProduct, DemoAudience, "bold")))
	c.println()

	c.banner("DEMONSTRATION 3: AUDIENCE-FOCUSED APPROACH")
	c.println()
	c.println(c.agent.Generate(ctx, generator.AudienceFocused(DemoProduct, DemoAudience, DemoTone)))
	c.println()
}

// Interactive collects product, audience, tone and style, then generates once.
// It returns io.EOF when input ends before all answers are given.
func (c *Console) Interactive(ctx context.Context) error {
	c.banner("INTERACTIVE SLOGAN GENERATOR")
	c.println()

	product, ok := c.ask("Enter product name: ")
	if !ok {
		return io.EOF
	}
	audience, ok := c.ask("Enter target audience: ")
	if !ok {
		return io.EOF
	}

	c.println()
	c.println("Available tones: professional, friendly, bold, playful")
	tone, ok := c.ask("Enter desired tone: ")
	if !ok {
		return io.EOF
	}
	if tone == "" {
		tone = "professional"
	}

	c.println()
	c.println("Available prompt styles:")
	c.println("  1. Professional (strategic and polished)")
	c.println("  2. Creative (bold and innovative)")
	c.println("  3. Audience-Focused (empathetic and relatable)")
	c.println()
	choice, ok := c.ask("Select prompt style (1-3): ")
	if !ok {
		return io.EOF
	}
	style, err := parseMenuStyle(choice)
	if err != nil {
		c.println("Invalid choice. Using Professional style.")
	}

	PrintHeading(c.out, style)
	res := c.agent.GenerateSlogans(ctx, generator.SloganRequest{
		ProductName:    product,
		TargetAudience: audience,
		Tone:           tone,
		Style:          style,
	})
	PrintText(c.out, res)
	return nil
}

// PrintHeading announces a generation; it is written before the call blocks.
func PrintHeading(w io.Writer, style generator.Style) {
	dash := strings.Repeat("-", 70)
	fmt.Fprintf(w, "\n%s\n", dash)
	fmt.Fprintf(w, "GENERATING %s SLOGANS...\n", strings.ToUpper(style.Label()))
	fmt.Fprintf(w, "%s\n\n", dash)
}

// PrintText writes the generated text, or the error sentinel, after its heading.
func PrintText(w io.Writer, res generator.Result) {
	fmt.Fprintln(w, res.Text)
	fmt.Fprintln(w)
}

// parseMenuStyle only accepts the numbered menu entries.
func parseMenuStyle(choice string) (generator.Style, error) {
	switch choice {
	case "1", "2", "3":
		return generator.ParseStyle(choice)
	default:
		return generator.StyleProfessional, fmt.Errorf("invalid style choice %q", choice)
	}
}

// ask reads one line of any length. A last line without a newline still counts.
func (c *Console) ask(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) && c.err == nil {
			c.err = err
		}
		if line == "" || !errors.Is(err, io.EOF) {
			return "", false
		}
	}
	return strings.TrimSpace(line), true
}

func (c *Console) banner(title string) {
	c.println(rule)
	c.println(title)
	c.println(rule)
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// preview cuts s to n runes.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
