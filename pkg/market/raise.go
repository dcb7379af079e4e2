package market

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"
)

const (
	raiseButtonClasses = "btn btn-default btn-block js-lot-raise"
	raiseBoxClass      = "raise-box"
)

// Category is one raisable lot group. GameID and NodeID are read from the
// category page at raise time.
type Category struct {
	URL    string
	GameID string
	NodeID string
}

// Outcome is the result of one raise attempt.
type Outcome int

const (
	// Failure means nothing was raised. The reason is not reported.
	Failure Outcome = iota
	// Success means the site confirmed the raise.
	Success
	// NeedsSubSelection means the site asked which sibling nodes to raise.
	// It never leaves Raise: the request is re-submitted with every node.
	NeedsSubSelection
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NeedsSubSelection:
		return "needs sub-selection"
	default:
		return "failure"
	}
}

// Result describes one raise attempt.
type Result struct {
	Category Category
	Outcome  Outcome
	// NodeIDs are the sibling nodes submitted on confirmation, if any.
	NodeIDs []string
}

// Raise raises the category at categoryURL. Per-category problems, such as
// a page without a raise button or a refused raise, come back as a Failure
// result with a nil error. Errors are reserved for transport failures and
// responses the site is not known to send.
func (c *Client) Raise(ctx context.Context, s *Session, categoryURL string) (Result, error) {
	cat, err := c.loadCategory(ctx, s, categoryURL)
	if errors.Is(err, ErrRaiseControlMissing) {
		c.log.Warning("%s: %v", categoryURL, err)
		return Result{Category: Category{URL: categoryURL}, Outcome: Failure}, nil
	}
	if err != nil {
		return Result{Category: Category{URL: categoryURL}}, err
	}
	return c.RaiseCategory(ctx, s, cat)
}

// RaiseCategory runs the raise exchange for an already loaded category.
func (c *Client) RaiseCategory(ctx context.Context, s *Session, cat Category) (Result, error) {
	res := Result{Category: cat, Outcome: Failure}
	endpoint := c.site.String() + raisePath
	form := url.Values{
		"game_id": {cat.GameID},
		"node_id": {cat.NodeID},
	}

	body, err := c.postForm(ctx, endpoint, form, s.XHRHeaders())
	if err != nil {
		return res, fmt.Errorf("raise %s: %w", cat.GameID, err)
	}
	outcome, nodeIDs, err := interpretRaise(body, endpoint)
	if err != nil {
		return res, err
	}

	if outcome == NeedsSubSelection {
		if err := c.sleep(ctx, c.confirmPause); err != nil {
			return res, err
		}
		if len(nodeIDs) == 0 {
			c.log.Warning("raise %s: confirmation offered no nodes", cat.GameID)
			return res, nil
		}
		form["node_ids[]"] = nodeIDs
		res.NodeIDs = nodeIDs
		body, err = c.postForm(ctx, endpoint, form, s.XHRHeaders())
		if err != nil {
			return res, fmt.Errorf("raise %s with %d nodes: %w", cat.GameID, len(nodeIDs), err)
		}
		outcome = judgeRaise(body)
	}

	res.Outcome = outcome
	if outcome == Success {
		c.console.Printf("Raised category (%s)", cat.GameID)
	}
	return res, nil
}

// loadCategory reads game and node ids off the raise button of a category
// page.
func (c *Client) loadCategory(ctx context.Context, s *Session, categoryURL string) (Category, error) {
	cat := Category{URL: categoryURL}
	pageURL, err := c.resolve(categoryURL)
	if err != nil {
		return cat, err
	}
	body, err := c.get(ctx, pageURL, s.Headers())
	if err != nil {
		return cat, err
	}
	doc, err := parseHTML(body)
	if err != nil {
		return cat, &ParseError{What: "category page", URL: pageURL, Err: err}
	}
	btn := findFirst(doc, withClasses("button", raiseButtonClasses))
	if btn == nil {
		return cat, ErrRaiseControlMissing
	}
	gameID, okGame := attr(btn, "data-game")
	nodeID, okNode := attr(btn, "data-node")
	if !okGame || !okNode {
		return cat, ErrRaiseControlMissing
	}
	cat.GameID = gameID
	cat.NodeID = nodeID
	return cat, nil
}

// interpretRaise classifies the first raise response. A confirmation
// response yields NeedsSubSelection together with the node ids offered by
// the modal, which may be none.
func interpretRaise(body, endpoint string) (Outcome, []string, error) {
	if !HasMarker(MarkerConfirmation, body) {
		return judgeRaise(body), nil, nil
	}
	if !gjson.Valid(body) {
		return Failure, nil, &ParseError{What: "confirmation response", URL: endpoint, Err: errors.New("invalid JSON")}
	}
	modal := gjson.Get(body, "modal")
	if !modal.Exists() {
		return Failure, nil, &ParseError{What: "confirmation response: modal", URL: endpoint}
	}
	nodeIDs, err := confirmationNodes(modal.String())
	if err != nil {
		return Failure, nil, &ParseError{What: "confirmation modal", URL: endpoint, Err: err}
	}
	return NeedsSubSelection, nodeIDs, nil
}

// confirmationNodes collects, in document order, the value of every
// checkbox input inside the modal's raise box.
func confirmationNodes(modal string) ([]string, error) {
	doc, err := parseHTML(modal)
	if err != nil {
		return nil, err
	}
	box := findFirst(doc, withClass("div", raiseBoxClass))
	if box == nil {
		return nil, nil
	}
	var nodeIDs []string
	for _, input := range findAll(box, checkbox) {
		if v, ok := attr(input, "value"); ok {
			nodeIDs = append(nodeIDs, v)
		}
	}
	return nodeIDs, nil
}

func judgeRaise(body string) Outcome {
	if HasMarker(MarkerSuccess, body) {
		return Success
	}
	return Failure
}
