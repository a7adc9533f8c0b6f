// Package courier provides the Courier entity: a courier-role actor that the
// simulator opportunistically attaches to an order when the order is picked up.
package courier
