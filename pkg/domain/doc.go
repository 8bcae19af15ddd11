/*
Package domain contains the core data model of the Turing engine.

It defines the alphabet, head shifts, control states and the transition rule
table, together with the outcome and error types the engine reports. This
package is kept pure and free of I/O or persistence concerns.

# Key Entities

  - Symbol: one tape cell value, Zero (the blank) or One.
  - Shift: the head movement applied after a write, Right or Left.
  - State: a numbered control state or the absorbing Halt state.
  - RuleTable: the ordered mapping from (Symbol, State) to the Rule to apply.
  - Frame: an immutable tape snapshot paired with the origin it was taken at.
  - MachineSnapshot: the serializable form of a machine, used by stores.
  - MachineDiff: the change between two snapshots, streamed to clients.
*/
package domain
