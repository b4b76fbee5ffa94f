package generate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/diaflow/pkg/diagram"
)

// Template is an offline generator that returns a canned sample diagram
// for the requested kind. It backs the --offline CLI mode and keeps the
// rest of the pipeline exercisable without credentials.
type Template struct{}

var _ Generator = (*Template)(nil)

// Generate returns the sample diagram for req.Kind as an untyped payload.
func (Template) Generate(_ context.Context, req Request) (map[string]any, error) {
	d, ok := samples[req.Kind]
	if !ok {
		d = samples[diagram.KindClass]
	}

	raw, err := diagram.Marshal(d)
	if err != nil {
		return nil, &Error{Kind: req.Kind, Prompt: req.Prompt, Err: err}
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &Error{Kind: req.Kind, Prompt: req.Prompt, Err: fmt.Errorf("decode sample: %w", err)}
	}
	return payload, nil
}

var samples = map[diagram.Kind]diagram.Diagram{
	diagram.KindClass: {
		Type: diagram.KindClass,
		Classes: []diagram.Class{
			{ID: "order", Name: "Order", Attributes: []string{"id: string", "total: decimal"}, Operations: []string{"addItem(item)", "checkout()"}},
			{ID: "item", Name: "OrderItem", Attributes: []string{"sku: string", "quantity: int"}, Operations: []string{}},
			{ID: "customer", Name: "Customer", Attributes: []string{"name: string", "email: string"}, Operations: []string{"placeOrder()"}},
		},
		Relationships: []diagram.Relationship{
			{Source: "order", Target: "item", Type: diagram.RelationComposition},
			{Source: "customer", Target: "order", Type: diagram.RelationAssociation, Label: "places"},
		},
	},
	diagram.KindUseCase: {
		Type: diagram.KindUseCase,
		Actors: []diagram.Actor{
			{ID: "shopper", Name: "Shopper"},
			{ID: "admin", Name: "Administrator"},
		},
		UseCases: []diagram.UseCase{
			{ID: "browse", Name: "Browse Catalog"},
			{ID: "checkout", Name: "Check Out"},
			{ID: "pay", Name: "Process Payment"},
			{ID: "manage", Name: "Manage Inventory"},
		},
		UseCaseRelationships: []diagram.UseCaseRelationship{
			{Source: "shopper", Target: "browse", Type: diagram.UseCaseRelAssociation},
			{Source: "shopper", Target: "checkout", Type: diagram.UseCaseRelAssociation},
			{Source: "checkout", Target: "pay", Type: diagram.UseCaseRelInclude},
			{Source: "admin", Target: "manage", Type: diagram.UseCaseRelAssociation},
		},
	},
	diagram.KindActivity: {
		Type: diagram.KindActivity,
		Activities: []diagram.Activity{
			{ID: "start", Type: diagram.ActivityInitial},
			{ID: "cart", Type: diagram.ActivityAction, Label: "Review Cart"},
			{ID: "stock", Type: diagram.ActivityDecision, Label: "In stock?"},
			{ID: "ship", Type: diagram.ActivityAction, Label: "Ship Order"},
			{ID: "notify", Type: diagram.ActivityAction, Label: "Notify Customer"},
			{ID: "end", Type: diagram.ActivityFinal},
		},
		Transitions: []diagram.Transition{
			{Source: "start", Target: "cart"},
			{Source: "cart", Target: "stock"},
			{Source: "stock", Target: "ship", Guard: "yes"},
			{Source: "stock", Target: "notify", Guard: "no"},
			{Source: "ship", Target: "end"},
			{Source: "notify", Target: "end"},
		},
	},
	diagram.KindSequence: {
		Type: diagram.KindSequence,
		Participants: []diagram.Participant{
			{ID: "user", Name: "User", Type: "actor"},
			{ID: "web", Name: "WebApp", Type: "object"},
			{ID: "db", Name: "Database", Type: "object"},
		},
		Messages: []diagram.Message{
			{ID: "m1", From: "user", To: "web", Label: "submit order", Type: diagram.MessageSync, Order: 1},
			{ID: "m2", From: "web", To: "db", Label: "insert order", Type: diagram.MessageSync, Order: 2},
			{ID: "m3", From: "db", To: "web", Label: "ok", Type: diagram.MessageReturn, Order: 3},
			{ID: "m4", From: "web", To: "user", Label: "confirmation", Type: diagram.MessageReturn, Order: 4},
		},
	},
	diagram.KindStateMachine: {
		Type: diagram.KindStateMachine,
		States: []diagram.State{
			{ID: "new", Name: "New", IsInitial: true},
			{ID: "paid", Name: "Paid", EntryAction: "reserveStock"},
			{ID: "shipped", Name: "Shipped"},
			{ID: "done", Name: "Delivered", IsFinal: true},
		},
		StateTransitions: []diagram.StateTransition{
			{Source: "new", Target: "paid", Trigger: "payment", Guard: "amount > 0"},
			{Source: "paid", Target: "shipped", Trigger: "dispatch"},
			{Source: "shipped", Target: "done", Trigger: "delivery"},
		},
	},
	diagram.KindComponent: {
		Type: diagram.KindComponent,
		Components: []diagram.Component{
			{ID: "web", Name: "Web Frontend", Stereotype: "service"},
			{ID: "api", Name: "Order API", Stereotype: "service", Interfaces: []diagram.Interface{
				{ID: "orders", Name: "IOrders", Type: diagram.InterfaceProvided},
			}},
			{ID: "store", Name: "Order Store", Stereotype: "database"},
		},
		Dependencies: []diagram.Dependency{
			{Source: "web", Target: "api", Type: diagram.DependencyPlain, Label: "REST"},
			{Source: "api", Target: "store", Type: diagram.DependencyPlain},
		},
	},
}
