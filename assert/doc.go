/*
Package assert collects declaration errors, and guards internal invariants.

  - A [Collector] gathers every problem found in a set of argument declarations, so they're reported together.
  - [True] and [TrueFunc] panic with a [*Violation] if an invariant fails, like the command index drifting from the command tree.

To remove assertions, build with the 'noassert' tag.
*/
package assert
