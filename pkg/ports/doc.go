/*
Package ports defines the driven ports (interfaces) around the machine engine.

# Key Interfaces

  - MachineStore: persists and loads machine snapshots per session.
  - DistributedLocker: serializes access to a session across replicas.

Adapters live under pkg/adapters. Each store adapter is expected to pass
RunMachineStoreContract.
*/
package ports
