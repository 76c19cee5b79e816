package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/profile"
	"github.com/zawyahq/zawya/core/space"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db         *sqlx.DB
	conf       *core.Config
	spaceSvc   space.ServiceInterface
	profileSvc profile.ServiceInterface
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migratedb COMMAND [ARGS] - run migrations (up, down, status, version, ...)")
	fmt.Println("  createspace -name NAME -owner OWNER_ID - create a space owned by an existing profile")
	fmt.Println("  prunetokens -days DAYS - clear open invite codes untouched for DAYS days")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createSpaceCmd := flag.NewFlagSet("createspace", flag.ExitOnError)
	createSpaceName := createSpaceCmd.String("name", "", "The space name.")
	createSpaceOwner := createSpaceCmd.String("owner", "", "The owner's profile ID.")

	pruneTokensCmd := flag.NewFlagSet("prunetokens", flag.ExitOnError)
	pruneTokensDays := pruneTokensCmd.Int("days", 30, "Open invites untouched for this many days are cleared.")

	switch args[1] {
	case "migratedb":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "createspace":
		if err := createSpaceCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createSpaceName == "" || *createSpaceOwner == "" {
			createSpaceCmd.Usage()
			return errHelp
		}
		return cli.createSpace(*createSpaceName, *createSpaceOwner)
	case "prunetokens":
		if err := pruneTokensCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.pruneTokens(*pruneTokensDays)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) createSpace(name, ownerID string) error {
	prof, err := cli.profileSvc.GetByID(ownerID)
	if err != nil {
		return err
	}

	sp, err := cli.spaceSvc.Create(
		space.NewSpace{Name: core.CleanString(name)},
		space.Member{ID: prof.ID, Name: prof.Name, Email: prof.Email, AvatarURL: prof.AvatarURL},
	)
	if err != nil {
		return err
	}
	logger.Printf("space %q created: id=%s invite=%s\n", sp.Name, sp.ID, *sp.InviteToken)
	return nil
}

// pruneTokens clears stale open invites so abandoned codes cannot linger
// indefinitely. Redeemed codes are already nil and unaffected.
func (cli *commandLine) pruneTokens(days int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := cli.db.Exec(
		`UPDATE space SET invite_token = NULL, updated_at = $1 WHERE invite_token IS NOT NULL AND updated_at < $2`,
		time.Now().UTC(), cutoff,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	logger.Printf("%d open invite(s) cleared\n", n)
	return nil
}
