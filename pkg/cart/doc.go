// Package cart owns the per-session shopping cart.
//
// Each cart line pairs a frozen product snapshot with a quantity. A line
// moves through absent -> present(qty=1) -> present(qty=n); removal is the
// only way back to absent. Quantity adjustments clamp at 1, so a line never
// disappears through decrements.
//
// All operations are total functions over the current cart state: there are
// no error conditions.
package cart
