// Package domain defines the core business entities of the pangpangeats
// backend: users, credit cards, restaurants with their menus, and orders
// built from selections. Entities validate themselves; persistence and
// authorization live in the store and service layers.
package domain
