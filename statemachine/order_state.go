package statemachine

import (
	"smartfood-api/apierror"
	"smartfood-api/models"
)

// ForwardSequence is the only allowed forward path of an order. Cancellation
// is reachable from any non-terminal state; delivered and cancelled are
// terminal.
var ForwardSequence = []models.OrderStatus{
	models.StatusPendingPayment,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusPickedUp,
	models.StatusDelivered,
}

var sequenceIndex = func() map[models.OrderStatus]int {
	m := make(map[models.OrderStatus]int, len(ForwardSequence))
	for i, s := range ForwardSequence {
		m[s] = i
	}
	return m
}()

// Position returns the 1-based position of status within the forward
// sequence. Cancelled orders have no position.
func Position(status models.OrderStatus) (int, bool) {
	i, ok := sequenceIndex[status]
	if !ok {
		return 0, false
	}
	return i + 1, true
}

// Steps is the total number of forward states, for tracking displays.
func Steps() int {
	return len(ForwardSequence)
}

// Terminal reports whether no further transition is allowed from status.
func Terminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// Advance validates a transition from one status to another, ignoring who is
// asking. Only the immediate next forward state, or cancellation of a
// non-terminal order, is legal.
func Advance(from, to models.OrderStatus) error {
	if Terminal(from) {
		return apierror.TerminalState("order is already %s and cannot change status", from)
	}
	if to == models.StatusCancelled {
		return nil
	}
	fromIdx, fromOK := sequenceIndex[from]
	toIdx, toOK := sequenceIndex[to]
	if !fromOK || !toOK || toIdx != fromIdx+1 {
		return apierror.InvalidTransition(
			"cannot move order from %s to %s; next allowed status is %s",
			from, to, describeNext(from),
		)
	}
	return nil
}

func describeNext(from models.OrderStatus) string {
	if i, ok := sequenceIndex[from]; ok && i+1 < len(ForwardSequence) {
		return string(ForwardSequence[i+1]) + " (or cancelled)"
	}
	return "none"
}

// actorRules lists which transitions each actor may trigger, on top of the
// structural rules enforced by Advance. Admin bypasses this table.
type actorRule struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

var actorRules = []actorRule{
	// Payment capture confirms the order.
	{From: models.StatusPendingPayment, To: models.StatusConfirmed, Actor: "system"},
	// Restaurant drives the kitchen.
	{From: models.StatusConfirmed, To: models.StatusPreparing, Actor: "restaurant"},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "restaurant"},
	// Driver takes it from there.
	{From: models.StatusReady, To: models.StatusPickedUp, Actor: "driver"},
	{From: models.StatusPickedUp, To: models.StatusDelivered, Actor: "driver"},
}

var actorRuleSet = func() map[actorRule]bool {
	m := make(map[actorRule]bool, len(actorRules))
	for _, r := range actorRules {
		m[r] = true
	}
	return m
}()

// CanTransition checks both the structural rules and the actor rules.
// Customers, restaurants and the system may always cancel a non-terminal
// order; drivers may not.
func CanTransition(from, to models.OrderStatus, actor string) error {
	if err := Advance(from, to); err != nil {
		return err
	}
	if actor == "admin" {
		return nil
	}
	if to == models.StatusCancelled {
		if actor == "driver" {
			return apierror.Forbidden("drivers cannot cancel orders")
		}
		return nil
	}
	if actorRuleSet[actorRule{From: from, To: to, Actor: actor}] {
		return nil
	}
	return apierror.Forbidden("actor %q may not move an order from %s to %s", actor, from, to)
}

// ValidTransitionsFrom returns all legal next states from a given state,
// regardless of actor. Used by the documentation endpoint.
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	if Terminal(status) {
		return nil
	}
	var nexts []models.OrderStatus
	if i, ok := sequenceIndex[status]; ok && i+1 < len(ForwardSequence) {
		nexts = append(nexts, ForwardSequence[i+1])
	}
	nexts = append(nexts, models.StatusCancelled)
	return nexts
}

// Describe returns the full transition table for documentation.
func Describe() []map[string]string {
	var out []map[string]string
	for _, r := range actorRules {
		out = append(out, map[string]string{
			"from": string(r.From), "to": string(r.To), "actor": r.Actor,
		})
	}
	for _, s := range ForwardSequence {
		if s == models.StatusDelivered {
			continue
		}
		out = append(out, map[string]string{
			"from": string(s), "to": string(models.StatusCancelled),
			"actor": "customer, restaurant, system or admin",
		})
	}
	return out
}
