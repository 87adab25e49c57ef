package services

import (
	"context"
	"testing"

	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/models"
)

func TestUserService_DeleteCascadesThroughServices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@x.com", models.RoleUser)
	bob := f.user(t, "bob@x.com", models.RoleUser)
	admin := f.user(t, "admin@x.com", models.RoleAdmin)

	aliceAd, err := f.adSvc.Create(ctx, alice, laptop())
	if err != nil {
		t.Fatalf("create ad: %v", err)
	}
	bobAd, err := f.adSvc.Create(ctx, bob, laptop())
	if err != nil {
		t.Fatalf("create ad: %v", err)
	}
	if _, err := f.reviewSvc.Create(ctx, bob, aliceAd.ID, dto.ReviewRequest{Text: ptr("on alice's ad")}); err != nil {
		t.Fatalf("review: %v", err)
	}
	if _, err := f.reviewSvc.Create(ctx, alice, bobAd.ID, dto.ReviewRequest{Text: ptr("by alice")}); err != nil {
		t.Fatalf("review: %v", err)
	}

	assertIs(t, f.userSvc.Delete(ctx, nil, alice.ID), domain.ErrUnauthenticated)
	assertIs(t, f.userSvc.Delete(ctx, alice, alice.ID), domain.ErrForbidden)

	if err := f.userSvc.Delete(ctx, admin, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err = f.adSvc.Get(ctx, bob, aliceAd.ID)
	assertIs(t, err, domain.ErrNotFound)

	reviews, err := f.reviewSvc.List(ctx, bob, bobAd.ID, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if reviews.TotalCount != 0 {
		t.Errorf("expected alice's review to be gone, got %d", reviews.TotalCount)
	}

	assertIs(t, f.userSvc.Delete(ctx, admin, alice.ID), domain.ErrNotFound)
}

func TestUserService_SetRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@x.com", models.RoleUser)
	admin := f.user(t, "admin@x.com", models.RoleAdmin)

	_, err := f.userSvc.SetRole(ctx, alice, alice.ID, models.RoleAdmin)
	assertIs(t, err, domain.ErrForbidden)

	_, err = f.userSvc.SetRole(ctx, admin, alice.ID, models.Role("root"))
	assertFields(t, err, "role")

	user, err := f.userSvc.SetRole(ctx, admin, alice.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("set role: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected admin, got %q", user.Role)
	}
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice@x.com", models.RoleUser)
	bob := f.user(t, "bob@x.com", models.RoleUser)
	admin := f.user(t, "admin@x.com", models.RoleAdmin)

	_, err := f.userSvc.Update(ctx, bob, alice.ID, dto.UpdateUserRequest{FirstName: ptr("Mallory")})
	assertIs(t, err, domain.ErrForbidden)

	_, err = f.userSvc.Update(ctx, alice, alice.ID, dto.UpdateUserRequest{Phone: ptr("+79123456789"), LastName: ptr(" ")})
	assertFields(t, err, "phone", "lastName")

	user, err := f.userSvc.Update(ctx, alice, alice.ID, dto.UpdateUserRequest{FirstName: ptr(" Alicia "), Phone: ptr("+7(900)000-00-00")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.FirstName != "Alicia" || user.Phone != "+7(900)000-00-00" || user.LastName != "Last" {
		t.Errorf("unexpected user after update: %+v", user)
	}

	if _, err := f.userSvc.Update(ctx, admin, alice.ID, dto.UpdateUserRequest{LastName: ptr("Moderated")}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	me, err := f.userSvc.Me(ctx, alice)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.LastName != "Moderated" || me.Email != "alice@x.com" {
		t.Errorf("unexpected profile: %+v", me)
	}
}

func TestUserService_ListAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	carol := f.user(t, "carol@x.com", models.RoleUser)
	f.user(t, "alice@x.com", models.RoleUser)

	_, err := f.userSvc.List(ctx, nil, 1)
	assertIs(t, err, domain.ErrUnauthenticated)
	_, err = f.userSvc.Me(ctx, nil)
	assertIs(t, err, domain.ErrUnauthenticated)

	page, err := f.userSvc.List(ctx, carol, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalCount != 2 || page.PageSize != 10 || page.Results[0].Email != "alice@x.com" {
		t.Errorf("unexpected page: %+v", page)
	}

	_, err = f.userSvc.Get(ctx, carol, 9999)
	assertIs(t, err, domain.ErrNotFound)
}
