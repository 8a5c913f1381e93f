// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// VaultItem is a single credential record of a user's vault.
// It only ever exists in plaintext inside client memory; on disk the whole
// collection is stored as one encrypted blob.
type VaultItem struct {
	// ID is generated when the item is created and never changes afterwards.
	ID string `json:"id"`

	// Title is the human-readable name of the record. Required.
	Title string `json:"title"`

	// Username is the login of the stored credential. Required.
	Username string `json:"username"`

	// Password is the stored secret. Required.
	Password string `json:"password"`

	// URL is an optional address of the service the credential belongs to.
	URL string `json:"url"`

	// Notes is an optional free-form annotation.
	Notes string `json:"notes"`
}

// VaultItemDraft holds user input for a new [VaultItem] before it has been
// assigned an ID.
type VaultItemDraft struct {
	Title    string
	Username string
	Password string
	URL      string
	Notes    string
}

// ToItem builds a [VaultItem] with the given id from the draft.
func (d VaultItemDraft) ToItem(id string) VaultItem {
	return VaultItem{
		ID:       id,
		Title:    d.Title,
		Username: d.Username,
		Password: d.Password,
		URL:      d.URL,
		Notes:    d.Notes,
	}
}

// VaultItemPatch describes a partial update of a [VaultItem].
// A nil field leaves the corresponding value unchanged. The ID can't be patched.
type VaultItemPatch struct {
	Title    *string
	Username *string
	Password *string
	URL      *string
	Notes    *string
}

// Apply returns a copy of item with every non-nil field of the patch applied.
func (p VaultItemPatch) Apply(item VaultItem) VaultItem {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Username != nil {
		item.Username = *p.Username
	}
	if p.Password != nil {
		item.Password = *p.Password
	}
	if p.URL != nil {
		item.URL = *p.URL
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	return item
}

// PatchFromItem builds a patch that overwrites every mutable field with the
// values of item.
func PatchFromItem(item VaultItem) VaultItemPatch {
	return VaultItemPatch{
		Title:    &item.Title,
		Username: &item.Username,
		Password: &item.Password,
		URL:      &item.URL,
		Notes:    &item.Notes,
	}
}
