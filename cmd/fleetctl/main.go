// Command fleetctl is the command-line client for the fleet ship management
// API. Every subcommand formats its arguments into an HTTP request against
// the REST API and renders the response as text.
//
// The API base address comes from the global --url flag (or the
// FLEET_API_URL environment variable). The command exits non-zero and prints
// a formatted error on connection failure or any non-2xx response.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/harbormaster/fleet/fleet/service"
	"github.com/harbormaster/fleet/fleet/ship"
)

func main() {
	if err := newRootCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds the fleetctl command tree. Output is written to out
// so tests can capture it.
func newRootCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "fleetctl",
		Usage: "Ship Management CLI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Value:   "http://localhost:8080",
				Usage:   "Base URL of the ship API",
				Sources: cli.EnvVars("FLEET_API_URL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all ships",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ships, err := client(cmd).listShips()
					if err != nil {
						return err
					}
					printShipTable(out, ships)
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "Get ship details",
				ArgsUsage: "SHIP_ID",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("usage: fleetctl get SHIP_ID")
					}
					sh, err := client(cmd).getShip(cmd.Args().Get(0))
					if err != nil {
						return err
					}
					printShipDetails(out, sh)
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "Create a new ship",
				ArgsUsage: "NAME POS_X POS_Y DEST_X DEST_Y",
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:  "speed",
						Usage: "Cruising speed, must be > 0 (default 1.0)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 5 {
						return fmt.Errorf("usage: fleetctl create NAME POS_X POS_Y DEST_X DEST_Y")
					}
					name := cmd.Args().Get(0)
					coords, err := parseFloats(cmd.Args().Slice()[1:])
					if err != nil {
						return err
					}

					req := service.CreateShipRequest{
						Name:         &name,
						PositionX:    &coords[0],
						PositionY:    &coords[1],
						DestinationX: &coords[2],
						DestinationY: &coords[3],
					}
					if cmd.IsSet("speed") {
						speed := cmd.Float("speed")
						req.Speed = &speed
					}

					sh, err := client(cmd).createShip(req)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Ship '%s' created successfully with ID: %s\n", sh.Name, sh.ID)
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "Update ship details",
				ArgsUsage: "SHIP_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "New ship name"},
					&cli.FloatFlag{Name: "pos-x", Usage: "New position X"},
					&cli.FloatFlag{Name: "pos-y", Usage: "New position Y"},
					&cli.FloatFlag{Name: "dest-x", Usage: "New destination X"},
					&cli.FloatFlag{Name: "dest-y", Usage: "New destination Y"},
					&cli.FloatFlag{Name: "speed", Usage: "New speed, must be > 0"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("usage: fleetctl update SHIP_ID [flags]")
					}

					var req service.UpdateShipRequest
					if cmd.IsSet("name") {
						name := cmd.String("name")
						req.Name = &name
					}
					if cmd.IsSet("pos-x") {
						v := cmd.Float("pos-x")
						req.PositionX = &v
					}
					if cmd.IsSet("pos-y") {
						v := cmd.Float("pos-y")
						req.PositionY = &v
					}
					if cmd.IsSet("dest-x") {
						v := cmd.Float("dest-x")
						req.DestinationX = &v
					}
					if cmd.IsSet("dest-y") {
						v := cmd.Float("dest-y")
						req.DestinationY = &v
					}
					if cmd.IsSet("speed") {
						v := cmd.Float("speed")
						req.Speed = &v
					}

					if req.Empty() {
						fmt.Fprintln(out, "No update fields provided.")
						return nil
					}

					sh, err := client(cmd).updateShip(cmd.Args().Get(0), req)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Ship '%s' updated successfully.\n", sh.Name)
					return nil
				},
			},
			{
				Name:      "move",
				Usage:     "Move ship to new position",
				ArgsUsage: "SHIP_ID X Y",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 3 {
						return fmt.Errorf("usage: fleetctl move SHIP_ID X Y")
					}
					coords, err := parseFloats(cmd.Args().Slice()[1:])
					if err != nil {
						return err
					}
					sh, err := client(cmd).moveShip(cmd.Args().Get(0), coords[0], coords[1])
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Ship '%s' moved to position (%g, %g)\n", sh.Name, coords[0], coords[1])
					return nil
				},
			},
			{
				Name:      "destination",
				Usage:     "Set ship destination",
				ArgsUsage: "SHIP_ID X Y",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 3 {
						return fmt.Errorf("usage: fleetctl destination SHIP_ID X Y")
					}
					coords, err := parseFloats(cmd.Args().Slice()[1:])
					if err != nil {
						return err
					}
					sh, err := client(cmd).setDestination(cmd.Args().Get(0), coords[0], coords[1])
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Ship '%s' destination set to (%g, %g)\n", sh.Name, coords[0], coords[1])
					return nil
				},
			},
			{
				Name:      "speed",
				Usage:     "Set ship speed",
				ArgsUsage: "SHIP_ID SPEED",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return fmt.Errorf("usage: fleetctl speed SHIP_ID SPEED")
					}
					speed, err := strconv.ParseFloat(cmd.Args().Get(1), 64)
					if err != nil {
						return fmt.Errorf("invalid number: %s", cmd.Args().Get(1))
					}
					sh, err := client(cmd).setSpeed(cmd.Args().Get(0), speed)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Ship '%s' speed set to %g\n", sh.Name, sh.Speed)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a ship",
				ArgsUsage: "SHIP_ID",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("usage: fleetctl delete SHIP_ID")
					}
					message, err := client(cmd).deleteShip(cmd.Args().Get(0))
					if err != nil {
						return err
					}
					fmt.Fprintln(out, message)
					return nil
				},
			},
			{
				Name:  "health",
				Usage: "Check API health",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					health, err := client(cmd).health()
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "API Status: %s\n", health.Status)
					fmt.Fprintf(out, "Ships Count: %d\n", health.ShipsCount)
					return nil
				},
			},
		},
	}
}

// client builds an API client from the global --url flag.
func client(cmd *cli.Command) *apiClient {
	return newAPIClient(cmd.String("url"))
}

// parseFloats parses a slice of positional arguments as float64 values.
func parseFloats(args []string) ([]float64, error) {
	result := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number: %s", arg)
		}
		result[i] = v
	}
	return result, nil
}

// printShipTable renders the fleet as a fixed-width table.
func printShipTable(out io.Writer, ships []*ship.Ship) {
	if len(ships) == 0 {
		fmt.Fprintln(out, "No ships found.")
		return
	}

	fmt.Fprintf(out, "%-36s %-20s %-16s %-16s %-8s\n", "ID", "Name", "Position", "Destination", "Speed")
	fmt.Fprintln(out, strings.Repeat("-", 98))

	for _, sh := range ships {
		pos := fmt.Sprintf("(%.1f, %.1f)", sh.PositionX, sh.PositionY)
		dest := fmt.Sprintf("(%.1f, %.1f)", sh.DestinationX, sh.DestinationY)
		fmt.Fprintf(out, "%-36s %-20s %-16s %-16s %-8.1f\n", sh.ID, sh.Name, pos, dest, sh.Speed)
	}
}

// printShipDetails renders one ship, one field per line.
func printShipDetails(out io.Writer, sh *ship.Ship) {
	fmt.Fprintln(out, "Ship Details:")
	fmt.Fprintf(out, "  ID: %s\n", sh.ID)
	fmt.Fprintf(out, "  Name: %s\n", sh.Name)
	fmt.Fprintf(out, "  Position: (%g, %g)\n", sh.PositionX, sh.PositionY)
	fmt.Fprintf(out, "  Destination: (%g, %g)\n", sh.DestinationX, sh.DestinationY)
	fmt.Fprintf(out, "  Speed: %g\n", sh.Speed)
}
