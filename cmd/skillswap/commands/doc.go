// Package commands defines the skillswap CLI and wires dependencies for subcommands.
//
// Commands
//
//   - register          Create an account and log in
//   - login             Log in as an existing member
//   - logout            Clear the current session
//   - whoami            Show the logged-in member
//   - profile update    Edit fields of your own profile
//   - users list        Page through public profiles
//   - users search      Filter profiles by text and availability
//   - users show        Show one profile by ID
//   - requests send     Offer a skill swap to another member
//   - requests list     Page through your sent and received requests
//   - requests accept   Accept a pending request sent to you
//   - requests reject   Reject a pending request sent to you
//   - seed              Write the demo dataset where it is missing
//
// # Implementation
//
// The root command loads configuration, opens the configured storage backend
// and builds the services before any subcommand runs. The persisted session
// key is the CLI's notion of who is logged in, so it survives between runs.
package commands
