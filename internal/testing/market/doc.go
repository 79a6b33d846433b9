// Package market holds end-to-end scenario tests for the settlement
// engine: order and offer execution, auction lifecycles and market
// administration.
package market
