// Package env holds the immutable environment mapping a worker is started
// with. It is assembled once from dotenv files and the process environment
// and then passed explicitly to handlers.
package env
