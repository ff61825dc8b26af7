package repository

import (
	"notesvc/internal/app/ds"
)

// Note methods (ORM)

func (r *Repository) CreateNote(note *ds.Note) error {
	return r.db.Create(note).Error
}

func (r *Repository) GetNoteByID(noteID uint) (*ds.Note, error) {
	var note ds.Note
	err := r.db.First(&note, noteID).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *Repository) GetNotesByUserID(userID uint) ([]ds.Note, error) {
	var notes []ds.Note
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&notes).Error
	return notes, err
}

// UpdateNote applies a partial update (title, content, folder_id, password_hash).
func (r *Repository) UpdateNote(noteID uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.Note{}).Where("id = ?", noteID).Updates(fields).Error
}

func (r *Repository) DeleteNote(noteID uint) error {
	return r.db.Delete(&ds.Note{}, noteID).Error
}

func (r *Repository) SetNoteFavorite(noteID uint, isFavorite bool) error {
	return r.db.Model(&ds.Note{}).Where("id = ?", noteID).Update("is_favorite", isFavorite).Error
}

func (r *Repository) GetFavoriteNotes(userID uint) ([]ds.Note, error) {
	var notes []ds.Note
	err := r.db.Where("user_id = ? AND is_favorite = ?", userID, true).
		Order("updated_at DESC").Find(&notes).Error
	return notes, err
}

// Versions

func (r *Repository) CreateNoteVersion(noteID uint, title, content string) error {
	version := ds.NoteVersion{
		NoteID:  noteID,
		Title:   title,
		Content: content,
	}
	return r.db.Create(&version).Error
}

func (r *Repository) GetNoteVersions(noteID uint) ([]ds.NoteVersion, error) {
	var versions []ds.NoteVersion
	err := r.db.Where("note_id = ?", noteID).Order("created_at DESC").Find(&versions).Error
	return versions, err
}

// Tags

func (r *Repository) CreateNoteTags(noteID uint, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]ds.NoteTag, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, ds.NoteTag{NoteID: noteID, Tag: tag})
	}
	return r.db.Create(&rows).Error
}

func (r *Repository) GetNoteTags(noteID uint) ([]ds.NoteTag, error) {
	var tags []ds.NoteTag
	err := r.db.Where("note_id = ?", noteID).Find(&tags).Error
	return tags, err
}

func (r *Repository) DeleteNoteTags(noteID uint) error {
	return r.db.Where("note_id = ?", noteID).Delete(&ds.NoteTag{}).Error
}

// Files

func (r *Repository) CreateNoteFile(file *ds.NoteFile) error {
	return r.db.Create(file).Error
}

func (r *Repository) GetNoteFiles(noteID uint) ([]ds.NoteFile, error) {
	var files []ds.NoteFile
	err := r.db.Where("note_id = ?", noteID).Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *Repository) GetNoteFileByID(fileID uint) (*ds.NoteFile, error) {
	var file ds.NoteFile
	err := r.db.First(&file, fileID).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *Repository) DeleteNoteFile(fileID uint) error {
	return r.db.Delete(&ds.NoteFile{}, fileID).Error
}

// Search looks through titles, contents and tags; tag hits are merged in and
// deduplicated by note id.
func (r *Repository) SearchNotes(userID uint, query string) ([]ds.Note, error) {
	pattern := "%" + query + "%"

	var byText []ds.Note
	err := r.db.Where("user_id = ? AND (title LIKE ? OR content LIKE ?)", userID, pattern, pattern).
		Order("updated_at DESC").Find(&byText).Error
	if err != nil {
		return nil, err
	}

	var byTag []ds.Note
	err = r.db.Model(&ds.Note{}).
		Joins("JOIN note_tags ON note_tags.note_id = notes.id").
		Where("notes.user_id = ? AND note_tags.tag LIKE ?", userID, pattern).
		Order("notes.updated_at DESC").
		Find(&byTag).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(byText))
	results := make([]ds.Note, 0, len(byText)+len(byTag))
	for _, n := range byText {
		seen[n.ID] = true
		results = append(results, n)
	}
	for _, n := range byTag {
		if !seen[n.ID] {
			seen[n.ID] = true
			results = append(results, n)
		}
	}
	return results, nil
}

func (r *Repository) GetSearchSuggestions(userID uint, query string, limit int) ([]ds.Note, error) {
	if limit <= 0 {
		limit = 5
	}
	var notes []ds.Note
	err := r.db.Select("id", "title").
		Where("user_id = ? AND title LIKE ?", userID, "%"+query+"%").
		Order("updated_at DESC").Limit(limit).Find(&notes).Error
	return notes, err
}
