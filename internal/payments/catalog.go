package payments

import "strings"

// Tool-name routing is a declarative table so precedence stays auditable:
//  1. exact alias match (refund/capture handler variants)
//  2. capture_payment_intent substring rule
//  3. catalog lookup (generic provider invocation)
//  4. lowest-priority substring fallback (refund/capture)
//  5. unresolved

type RouteKind int

const (
	RouteRefund RouteKind = iota + 1
	RouteCapture
	RouteCatalog
)

type Route struct {
	Kind RouteKind
	// Tool is set for RouteCatalog only.
	Tool CatalogTool
}

type CapabilityGroup string

const (
	GroupRefunds        CapabilityGroup = "refunds"
	GroupCustomers      CapabilityGroup = "customers"
	GroupPaymentIntents CapabilityGroup = "payment_intents"
)

// CatalogTool is one generically invocable provider tool.
type CatalogTool struct {
	Name  string
	Group CapabilityGroup
}

type substringRule struct {
	substr string
	kind   RouteKind
}

type Catalog struct {
	aliases map[string]RouteKind
	// preCatalogRules run before the catalog lookup, postCatalogRules after.
	preCatalogRules  []substringRule
	tools            map[string]CatalogTool
	postCatalogRules []substringRule
}

// NewCatalog builds the default routing table. The generic catalog is scoped
// at construction time to exactly three capability groups: refund
// create/read, customer read, payment-intent read/update. No other provider
// capability is reachable through the relay.
func NewCatalog() *Catalog {
	aliases := map[string]RouteKind{
		"refunds_create":        RouteRefund,
		"create_refund":         RouteRefund,
		"stripe_refunds_create": RouteRefund,

		"paymentIntents_capture":        RouteCapture,
		"capture_payment_intent":        RouteCapture,
		"stripe_paymentIntents_capture": RouteCapture,
		"capturePaymentIntent":          RouteCapture,
		"stripe_capture_payment_intent": RouteCapture,
	}

	tools := map[string]CatalogTool{
		"refunds_read":          {Name: "refunds_read", Group: GroupRefunds},
		"customers_read":        {Name: "customers_read", Group: GroupCustomers},
		"paymentIntents_read":   {Name: "paymentIntents_read", Group: GroupPaymentIntents},
		"paymentIntents_update": {Name: "paymentIntents_update", Group: GroupPaymentIntents},
	}

	return &Catalog{
		aliases:          aliases,
		preCatalogRules:  []substringRule{{substr: "capture_payment_intent", kind: RouteCapture}},
		tools:            tools,
		postCatalogRules: []substringRule{{substr: "refund", kind: RouteRefund}, {substr: "capture", kind: RouteCapture}},
	}
}

// Resolve applies the routing table in precedence order.
func (c *Catalog) Resolve(name string) (Route, bool) {
	if kind, ok := c.aliases[name]; ok {
		return Route{Kind: kind}, true
	}
	for _, rule := range c.preCatalogRules {
		if strings.Contains(name, rule.substr) {
			return Route{Kind: rule.kind}, true
		}
	}
	if tool, ok := c.tools[name]; ok {
		return Route{Kind: RouteCatalog, Tool: tool}, true
	}
	for _, rule := range c.postCatalogRules {
		if strings.Contains(name, rule.substr) {
			return Route{Kind: rule.kind}, true
		}
	}
	return Route{}, false
}
