package main

import (
	"context"
	"fmt"

	"github.com/nzaba/tempo/core"
	"github.com/nzaba/tempo/core/attendance"
	"github.com/nzaba/tempo/core/directory"
)

func (cli *commandLine) addParent(name, phone, email, emergency string) error {
	ctx := context.Background()

	if last4 := phoneLast4(phone); len(last4) < 4 {
		return fmt.Errorf("phone number %q has fewer than 4 digits", phone)
	}
	parent, err := cli.dirRepo.CreateParent(ctx, directory.Parent{
		Name:             core.CleanString(name),
		Phone:            core.CleanString(phone),
		Email:            core.CleanString(email, true /* lower */),
		EmergencyContact: core.CleanString(emergency),
	})
	if err != nil {
		return err
	}
	fmt.Printf("parent %q created: %s\n", parent.Name, parent.ID)
	return nil
}

// addStudent enrolls a student under a parent. The student's check-in secret
// is the last 4 digits of the parent's phone number at enrollment time.
func (cli *commandLine) addStudent(name, parentID string) error {
	ctx := context.Background()

	parent, err := cli.dirRepo.GetParent(ctx, core.CleanString(parentID))
	if err != nil {
		return err
	}
	secret := phoneLast4(parent.Phone)
	if len(secret) < 4 {
		return fmt.Errorf("parent %q has no usable phone number on file", parent.Name)
	}

	student, err := cli.dirRepo.CreateStudent(ctx, directory.Student{
		Name:     core.CleanString(name),
		IsActive: true,
		ParentID: parent.ID,
		Secret:   secret,
	})
	if err != nil {
		return err
	}
	fmt.Printf("student %q created: %s\n", student.Name, student.ID)
	return nil
}

func (cli *commandLine) addInstructor(name, pin string) error {
	ctx := context.Background()

	pin = attendance.SanitizePIN(pin)
	if len(pin) != 4 {
		return fmt.Errorf("PIN must be exactly 4 digits")
	}

	instructor, err := cli.dirRepo.CreateInstructor(ctx, directory.Instructor{
		Name:     core.CleanString(name),
		IsActive: true,
		Secret:   pin,
	})
	if err != nil {
		return err
	}
	fmt.Printf("instructor %q created: %s\n", instructor.Name, instructor.ID)
	return nil
}

// phoneLast4 returns the last 4 digits of a phone number in any formatting.
func phoneLast4(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
