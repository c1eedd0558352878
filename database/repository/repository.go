package repository

import (
	directoryRepo "courier/database/repository/directory"
	reminderRepo "courier/database/repository/reminder"
	scheduleRepo "courier/database/repository/schedule"
	templateRepo "courier/database/repository/template"
)

// Re-export the DirectoryRepository interface and constructor.
type DirectoryRepository = directoryRepo.DirectoryRepository

var NewMongoDirectoryRepo = directoryRepo.NewMongoDirectoryRepo

// Re-export the TemplateRepository interface and constructor.
type TemplateRepository = templateRepo.TemplateRepository

var NewMongoTemplateRepo = templateRepo.NewMongoTemplateRepo
var ErrTemplateNotFound = templateRepo.ErrTemplateNotFound

// Re-export the ScheduleRepository interface and constructor.
type ScheduleRepository = scheduleRepo.ScheduleRepository

var NewMongoScheduleRepo = scheduleRepo.NewMongoScheduleRepo

// Re-export the ReminderRepository interface and constructor.
type ReminderRepository = reminderRepo.ReminderRepository

var NewMongoReminderRepo = reminderRepo.NewMongoReminderRepo
