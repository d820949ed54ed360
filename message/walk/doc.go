// Package walk visits the parts of a message tree.
package walk
