package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxxyapp/taxxy/internal/model"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the tax profile used to ground classifications",
	}

	cmd.AddCommand(profileSetCmd())
	cmd.AddCommand(profileShowCmd())

	return cmd
}

func profileSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save or update your tax profile",
		RunE:  runProfileSet,
	}

	cmd.Flags().String("filing-status", "", "filing status (single, married-joint, ...)")
	cmd.Flags().String("state", "", "filing state")
	cmd.Flags().String("business-type", "", "business type (sole-proprietor, llc, s-corp, ...)")
	cmd.Flags().Bool("home-office", false, "has a home office")
	cmd.Flags().Int("home-office-sqft", 0, "home office square footage")
	cmd.Flags().Bool("vehicle", false, "uses a vehicle for business")
	cmd.Flags().Int("vehicle-pct", 0, "business share of vehicle use, percent")

	return cmd
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	owner, err := requireOwner()
	if err != nil {
		return err
	}

	filingStatus, _ := cmd.Flags().GetString("filing-status")
	state, _ := cmd.Flags().GetString("state")
	businessType, _ := cmd.Flags().GetString("business-type")
	homeOffice, _ := cmd.Flags().GetBool("home-office")
	homeOfficeSqft, _ := cmd.Flags().GetInt("home-office-sqft")
	vehicle, _ := cmd.Flags().GetBool("vehicle")
	vehiclePct, _ := cmd.Flags().GetInt("vehicle-pct")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profile := &model.TaxProfile{
		Owner:                   owner,
		FilingStatus:            filingStatus,
		State:                   state,
		BusinessType:            businessType,
		HasHomeOffice:           homeOffice,
		HomeOfficeSquareFeet:    homeOfficeSqft,
		UsesVehicleForBusiness:  vehicle,
		BusinessMilesPercentage: vehiclePct,
	}

	if err := store.SaveTaxProfile(ctx, profile); err != nil {
		return err
	}

	fmt.Println("Tax profile saved")
	return nil
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved tax profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			owner, err := requireOwner()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			profile, err := store.GetTaxProfile(ctx, owner)
			if err != nil {
				return err
			}
			if profile == nil {
				fmt.Println("No tax profile saved")
				return nil
			}

			fmt.Printf("Filing status: %s\n", profile.FilingStatus)
			fmt.Printf("State:         %s\n", profile.State)
			fmt.Printf("Business type: %s\n", profile.BusinessType)
			if profile.HasHomeOffice {
				fmt.Printf("Home office:   yes (%d sq ft)\n", profile.HomeOfficeSquareFeet)
			} else {
				fmt.Println("Home office:   no")
			}
			if profile.UsesVehicleForBusiness {
				fmt.Printf("Vehicle:       yes (%d%% business)\n", profile.BusinessMilesPercentage)
			} else {
				fmt.Println("Vehicle:       no")
			}

			return nil
		},
	}
}
