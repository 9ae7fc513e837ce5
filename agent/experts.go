package agent

import (
	"context"
	"fmt"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/etnz/drip/docs"
	"github.com/etnz/drip/renderer"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: orDefault(model),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to understand what reinvesting the dividends of a stock would have
			produced over a period of time: how many shares they would own, what it would be worth
			and how it compares to simply holding the stock.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded with Google Search.
func NewTrader(model string) *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		Very well aware of all the financial products and institutions,
		about the latest news about the different funds or companies and their dividend policies.
		Ask the Trader whenever you need recent or grounding information, or to find the ticker of a company.`,
		ModelName: orDefault(model),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a expert in Trading, you can search and find about anything related to
			financial institutions, companies, markets, funds etc. You Leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latests news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert that runs dividend reinvestment simulations with p.
func NewAnalyst(model string, p drip.Provider, opts drip.Options) *Expert {
	lib := []Function{Simulate(p, opts), Documentation}
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It simulates the reinvestment of the dividends of a stock
		over a date range, starting from one share, and reports the shares held, the value of the position,
		the value of simply holding the stock and every dividend paid.`,
		ModelName: orDefault(model),
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst specialized in dividend reinvestment.
				You know how to use the Tools to simulate the reinvestment of the dividends of a ticker
				and to read the documentation about how the simulation works.
				You are part of a team of experts, they might ask you questions with approximative
				language, figure out the ticker and the period they meant.
				Always answer with the figures returned by the simulation, never guess them.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func orDefault(model string) string {
	if model == "" {
		return DefaultModel
	}
	return model
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Simulate returns the tool that runs Analyze with p and renders the summary.
func Simulate(p drip.Provider, opts drip.Options) *Func {
	const name = "simulate"
	dateDoc := must(docs.Topic("dates"))
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Simulate buys shares of ticker on the first trading day of the range, then reinvests
			every dividend at that day's close, and reports the outcome as markdown.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ticker": {
						Type:        genai.TypeString,
						Description: "The ticker of the stock, for instance KO or VZ.",
					},
					"start": {
						Type:        genai.TypeString,
						Description: "The first day of the simulation, " + drip.DefaultStart.String() + " by default.\n\n" + dateDoc,
					},
					"end": {
						Type:        genai.TypeString,
						Description: "The last day of the simulation, " + drip.DefaultEnd.String() + " by default.",
					},
					"initial_shares": {
						Type:        genai.TypeString,
						Description: "The number of shares bought on the first day, as a decimal, 1 by default.",
					},
				},
				Required: []string{"ticker"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report with the final figures, the dividends per year and every dividend reinvested.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			q, initial, err := simulateArgs(args)
			if err != nil {
				return failure(id, name, err)
			}
			o := opts
			if !initial.IsZero() {
				o.InitialShares = initial
			}
			a, err := drip.Analyze(ctx, p, q, o)
			if err != nil {
				return failure(id, name, err)
			}
			s := drip.Summarize(a)
			return success(id, name, renderer.RenderSummary(&s, renderer.SummaryRenderOptions{Rows: true}))
		},
	}
}

func simulateArgs(args map[string]any) (q drip.Query, initial decimal.Decimal, err error) {
	ticker, err := stringArg(args, "ticker", "")
	if err != nil {
		return q, initial, err
	}
	start, err := dateArg(args, "start", drip.DefaultStart)
	if err != nil {
		return q, initial, err
	}
	end, err := dateArg(args, "end", drip.DefaultEnd)
	if err != nil {
		return q, initial, err
	}
	shares, err := stringArg(args, "initial_shares", "")
	if err != nil {
		return q, initial, err
	}
	if shares != "" {
		if initial, err = decimal.NewFromString(shares); err != nil {
			return q, initial, fmt.Errorf("argument 'initial_shares' must be a decimal got %q", shares)
		}
		if !initial.IsPositive() {
			return q, initial, fmt.Errorf("argument 'initial_shares' must be positive got %q", shares)
		}
	}
	return drip.NewQuery(ticker, start, end), initial, nil
}

func dateArg(args map[string]any, name string, def date.Date) (date.Date, error) {
	s, err := stringArg(args, name, "")
	if err != nil || s == "" {
		return def, err
	}
	d, err := date.Parse(s)
	if err != nil {
		return def, fmt.Errorf("argument %q must be a valid date got %q. Below is the doc about the format date\n\n%s ", name, s, must(docs.Topic("dates")))
	}
	return d, nil
}

// Documentation is the tool to read the embedded documentation.
var Documentation = &Func{
	Decl: &genai.FunctionDeclaration{
		Name:        "documentation",
		Description: "Documentation returns a documentation topic about drip, the readme lists the topics.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"topic": {
					Type:        genai.TypeString,
					Description: "The name of the topic, readme by default.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The topic in markdown.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		topic, err := stringArg(args, "topic", docs.Readme)
		if err != nil {
			return failure(id, "documentation", err)
		}
		content, err := docs.Topic(topic)
		if err != nil {
			return failure(id, "documentation", err)
		}
		return success(id, "documentation", content)
	},
}
