package sheetdb

import (
	"testing"
)

func TestShare(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	results := must(db.Share(ss.ID, []Grant{
		{Email: "alice@example.com", Role: RoleWriter},
		{Email: "bob@example.com", Role: RoleReader},
	}))
	deepEqual(t, len(results), 2)
	isnilErr(t, results[0].Err)
	isnilErr(t, results[1].Err)

	deepEqual(t, must(db.Permissions(ss.ID)), []Grant{
		{Email: "alice@example.com", Role: RoleWriter},
		{Email: "bob@example.com", Role: RoleReader},
	})
}

func TestShareReplacesRole(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	must(db.Share(ss.ID, []Grant{{Email: "alice@example.com", Role: RoleReader}}))
	must(db.Share(ss.ID, []Grant{{Email: "alice@example.com", Role: RoleCommenter}}))

	deepEqual(t, must(db.Permissions(ss.ID)), []Grant{
		{Email: "alice@example.com", Role: RoleCommenter},
	})
}

func TestShareInvalidRolePartialFailure(t *testing.T) {
	db := setup(t)
	ss := must(db.CreateSpreadsheet("T"))

	results := must(db.Share(ss.ID, []Grant{
		{Email: "alice@example.com", Role: RoleWriter},
		{Email: "bob@example.com", Role: Role("owner")},
		{Email: "carol@example.com", Role: RoleReader},
	}))
	deepEqual(t, len(results), 3)
	isnilErr(t, results[0].Err)
	wantErr(t, results[1].Err, ErrInvalidRole)
	isnilErr(t, results[2].Err)

	// The invalid recipient never aborts the others.
	deepEqual(t, must(db.Permissions(ss.ID)), []Grant{
		{Email: "alice@example.com", Role: RoleWriter},
		{Email: "carol@example.com", Role: RoleReader},
	})
}

func TestShareSpreadsheetMissing(t *testing.T) {
	db := setup(t)

	_, err := db.Share(77, []Grant{{Email: "a@example.com", Role: RoleReader}})
	wantErr(t, err, ErrSpreadsheetNotFound)

	_, err = db.Permissions(77)
	wantErr(t, err, ErrSpreadsheetNotFound)
}

func TestRoleValid(t *testing.T) {
	deepEqual(t, RoleReader.Valid(), true)
	deepEqual(t, RoleCommenter.Valid(), true)
	deepEqual(t, RoleWriter.Valid(), true)
	deepEqual(t, Role("owner").Valid(), false)
	deepEqual(t, Role("").Valid(), false)
}
